package repository

import (
	"time"

	pushdomain "hqadmin-backend/internal/push/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceTokenRepository defines the interface for device token operations
type DeviceTokenRepository interface {
	Upsert(token *pushdomain.DeviceToken) error
	FindByToken(token string) (*pushdomain.DeviceToken, error)
	Deactivate(token string) error
	FindActiveTokensForMember(appType pushdomain.AppType, memberID string) ([]string, error)
}

type deviceTokenRepository struct {
	db *gorm.DB
}

// NewDeviceTokenRepository creates a new instance of deviceTokenRepository
func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

// Upsert registers or refreshes a token row keyed by the token string.
// Re-registering a previously unregistered token reactivates it.
func (r *deviceTokenRepository) Upsert(row *pushdomain.DeviceToken) error {
	now := time.Now()
	existing, err := r.FindByToken(row.Token)
	if err != nil {
		return err
	}

	if existing == nil {
		row.ID = uuid.New().String()
		row.IsActive = true
		row.LastSeenAt = &now
		return r.db.Create(row).Error
	}

	existing.AppType = row.AppType
	existing.Platform = row.Platform
	existing.DeviceID = row.DeviceID
	if row.OwnerMemberID != nil {
		existing.OwnerMemberID = row.OwnerMemberID
	}
	existing.IsActive = true
	existing.LastSeenAt = &now
	return r.db.Save(existing).Error
}

func (r *deviceTokenRepository) FindByToken(token string) (*pushdomain.DeviceToken, error) {
	var row pushdomain.DeviceToken
	err := r.db.Where("token = ?", token).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Deactivate flips is_active off (logical delete); unknown tokens are a no-op
func (r *deviceTokenRepository) Deactivate(token string) error {
	now := time.Now()
	return r.db.Model(&pushdomain.DeviceToken{}).
		Where("token = ?", token).
		Updates(map[string]interface{}{"is_active": false, "last_seen_at": now}).Error
}

func (r *deviceTokenRepository) FindActiveTokensForMember(appType pushdomain.AppType, memberID string) ([]string, error) {
	var tokens []string
	err := r.db.Model(&pushdomain.DeviceToken{}).
		Where("app_type = ? AND is_active = ? AND owner_member_id = ?", appType, true, memberID).
		Pluck("token", &tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
