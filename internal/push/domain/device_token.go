package domain

import "time"

// DeviceToken represents a registered FCM device token. Tokens are never
// hard-deleted; unregistering flips IsActive to false and every dispatch or
// subscription query filters on the active flag.
type DeviceToken struct {
	ID            string       `json:"id" gorm:"primaryKey"`
	AppType       AppType      `json:"app_type" gorm:"size:16;not null"`
	Platform      PlatformType `json:"platform" gorm:"size:16;not null"`
	Token         string       `json:"-" gorm:"size:512;uniqueIndex;not null"` // Don't expose token in JSON
	DeviceID      string       `json:"device_id" gorm:"size:128"`
	OwnerMemberID *string      `json:"owner_member_id" gorm:"index"`
	OwnerStoreID  *string      `json:"owner_store_id" gorm:"index"`
	OwnerStaffID  *string      `json:"owner_staff_id" gorm:"index"`
	IsActive      bool         `json:"is_active" gorm:"not null;default:true"`
	LastSeenAt    *time.Time   `json:"last_seen_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
