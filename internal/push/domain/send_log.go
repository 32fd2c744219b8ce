package domain

import "time"

// SendLog is the append-only audit trail: one row per dispatch attempt.
// Exactly one of Topic/Token is set, and exactly one of ResultMessageID /
// ResultError.
type SendLog struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	AppType         AppType   `json:"app_type" gorm:"size:16;not null"`
	Topic           string    `json:"topic" gorm:"size:64"`
	Token           string    `json:"token" gorm:"size:512"`
	Title           string    `json:"title" gorm:"size:255"`
	Body            string    `json:"body"`
	DataJSON        string    `json:"data_json"`
	ResultMessageID string    `json:"result_message_id" gorm:"size:255"`
	ResultError     string    `json:"result_error"`
	SentAt          time.Time `json:"sent_at" gorm:"index;not null"`
	OwnerStoreID    *string   `json:"owner_store_id" gorm:"index"`
	OwnerMemberID   *string   `json:"owner_member_id" gorm:"index"`
	OwnerStaffID    *string   `json:"owner_staff_id" gorm:"index"`
}
