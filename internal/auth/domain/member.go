package domain

import "time"

// Member is a headquarters back-office user
type Member struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never exposed
	Name      string    `json:"name"`
	Role      string    `json:"role" gorm:"size:32;default:HQ"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
