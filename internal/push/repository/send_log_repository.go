package repository

import (
	pushdomain "hqadmin-backend/internal/push/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SendLogRepository appends and reads dispatch audit rows
type SendLogRepository interface {
	Append(row *pushdomain.SendLog) error
	FindRecent(limit int) ([]pushdomain.SendLog, error)
}

type sendLogRepository struct {
	db *gorm.DB
}

// NewSendLogRepository creates a new instance of sendLogRepository
func NewSendLogRepository(db *gorm.DB) SendLogRepository {
	return &sendLogRepository{db: db}
}

func (r *sendLogRepository) Append(row *pushdomain.SendLog) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	return r.db.Create(row).Error
}

// FindRecent returns the most recent rows ordered by send time descending.
// The limit is clamped to [1, 500].
func (r *sendLogRepository) FindRecent(limit int) ([]pushdomain.SendLog, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}
	var rows []pushdomain.SendLog
	err := r.db.Order("sent_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
