package repository

import (
	pushdomain "hqadmin-backend/internal/push/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreferenceRepository defines the interface for recipient preference rows
type PreferenceRepository interface {
	FindByOwner(appType pushdomain.AppType, memberID string) (*pushdomain.Preference, error)
	Save(pref *pushdomain.Preference) error
}

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new instance of preferenceRepository
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) FindByOwner(appType pushdomain.AppType, memberID string) (*pushdomain.Preference, error) {
	var row pushdomain.Preference
	err := r.db.Where("app_type = ? AND owner_member_id = ?", appType, memberID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *preferenceRepository) Save(pref *pushdomain.Preference) error {
	if pref.ID == "" {
		pref.ID = uuid.New().String()
		return r.db.Create(pref).Error
	}
	return r.db.Save(pref).Error
}
