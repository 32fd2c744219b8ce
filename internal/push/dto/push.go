package dto

import (
	pushdomain "hqadmin-backend/internal/push/domain"
)

// RegisterTokenRequest upserts a device token for the session member
type RegisterTokenRequest struct {
	AppType       pushdomain.AppType      `json:"app_type" binding:"required"`
	Platform      pushdomain.PlatformType `json:"platform" binding:"required"`
	Token         string                  `json:"token" binding:"required"`
	DeviceID      string                  `json:"device_id"`
	OwnerMemberID *string                 `json:"owner_member_id"`
}

// TemplatePreviewRequest renders a template without sending anything
type TemplatePreviewRequest struct {
	TemplateCode string                 `json:"template_code" binding:"required"`
	Variables    map[string]interface{} `json:"variables"`
}

// TestSendRequest sends a test notification to a topic or a single token
type TestSendRequest struct {
	TokenOrTopic string            `json:"token_or_topic" binding:"required"`
	Topic        bool              `json:"topic"`
	Title        string            `json:"title" binding:"required"`
	Body         string            `json:"body" binding:"required"`
	Data         map[string]string `json:"data"`
}

// PreferenceUpdateRequest carries a partial preference update; nil fields are
// left untouched. When ApplySubscriptions is true (or unset) the category
// changes are applied to the HQ topic subscriptions immediately.
type PreferenceUpdateRequest struct {
	CatNotice          *bool `json:"cat_notice"`
	CatStockLow        *bool `json:"cat_stock_low"`
	CatExpireSoon      *bool `json:"cat_expire_soon"`
	ThresholdDays      *int  `json:"threshold_days"`
	ApplySubscriptions *bool `json:"apply_subscriptions"`
}
