package repository

import (
	"log"

	pushdomain "hqadmin-backend/internal/push/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateRepository defines the interface for notification template lookup
type TemplateRepository interface {
	FindByCode(code string) (*pushdomain.Template, error)
	Upsert(code, titleTemplate, bodyTemplate string) error
	SeedDefaults() error
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new instance of templateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) FindByCode(code string) (*pushdomain.Template, error) {
	var row pushdomain.Template
	err := r.db.Where("template_code = ?", code).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert creates or updates a template row keyed by its code
func (r *templateRepository) Upsert(code, titleTemplate, bodyTemplate string) error {
	existing, err := r.FindByCode(code)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(&pushdomain.Template{
			ID:            uuid.New().String(),
			TemplateCode:  code,
			TitleTemplate: titleTemplate,
			BodyTemplate:  bodyTemplate,
		}).Error
	}
	existing.TitleTemplate = titleTemplate
	existing.BodyTemplate = bodyTemplate
	return r.db.Save(existing).Error
}

// SeedDefaults idempotently installs the HQ alert templates at startup
func (r *templateRepository) SeedDefaults() error {
	seeds := []struct {
		code  string
		title string
		body  string
	}{
		{pushdomain.TemplateStockLow,
			"[Stock] HQ stock low",
			"{materialName} stock {qty} (threshold: {threshold})"},
		{pushdomain.TemplateExpireSoon,
			"[Expiring soon] {materialName}",
			"{days} day(s) left (lot: {lot})"},
	}
	for _, s := range seeds {
		if err := r.Upsert(s.code, s.title, s.body); err != nil {
			return err
		}
		log.Printf("[FCM] template upserted: %s", s.code)
	}
	return nil
}
