package domain

import "time"

// Template codes seeded at startup
const (
	TemplateStockLow   = "HQ_STOCK_LOW"
	TemplateExpireSoon = "HQ_EXPIRE_SOON"
)

// Template holds a title/body pair keyed by a unique code. Placeholders use
// the literal form {variableName} with no escaping.
type Template struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	TemplateCode  string    `json:"template_code" gorm:"size:64;uniqueIndex;not null"`
	TitleTemplate string    `json:"title_template" gorm:"size:255;not null"`
	BodyTemplate  string    `json:"body_template" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
