package domain

import "time"

// Preference default values applied on first write
const (
	DefaultThresholdDays = 3
)

// Preference stores per-recipient category opt-in flags and the
// expiration-threshold-days setting. One row per (AppType, OwnerMemberID).
type Preference struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	AppType       AppType   `json:"app_type" gorm:"size:16;not null;index:ix_pref_owner"`
	OwnerMemberID string    `json:"owner_member_id" gorm:"index:ix_pref_owner"`
	CatNotice     bool      `json:"cat_notice" gorm:"not null;default:true"`
	CatStockLow   bool      `json:"cat_stock_low" gorm:"not null;default:true"`
	CatExpireSoon bool      `json:"cat_expire_soon" gorm:"not null;default:true"`
	ThresholdDays int       `json:"threshold_days" gorm:"not null;default:3"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
