package usecase

import (
	pushdomain "hqadmin-backend/internal/push/domain"
	pushdto "hqadmin-backend/internal/push/dto"
)

// PushUsecase covers token registration, template rendering, dispatch,
// topic subscription management and recipient preferences.
type PushUsecase interface {
	RegisterToken(req *pushdto.RegisterTokenRequest, sessionMemberID string) error
	UnregisterToken(token string) error

	RenderTitle(templateCode string, vars map[string]interface{}) (string, error)
	RenderBody(templateCode string, vars map[string]interface{}) (string, error)

	SendToToken(appType pushdomain.AppType, token, title, body string, data map[string]string) (string, error)
	SendToTopic(appType pushdomain.AppType, topic, title, body string, data map[string]string) (string, error)

	SubscribeToTopic(topic, memberID string) error
	UnsubscribeFromTopic(topic, memberID string) error

	UpsertPreference(memberID string, req *pushdto.PreferenceUpdateRequest) (*pushdomain.Preference, error)
	GetPreference(memberID string) (*pushdomain.Preference, error)

	RecentLogs(limit int) ([]pushdomain.SendLog, error)
}
