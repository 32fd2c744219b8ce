package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	pushdomain "hqadmin-backend/internal/push/domain"
	pushdto "hqadmin-backend/internal/push/dto"
	"hqadmin-backend/internal/push/repository"
	"hqadmin-backend/pkg/config"
	"hqadmin-backend/pkg/fcm"

	"firebase.google.com/go/v4/messaging"
)

var topicPattern = regexp.MustCompile(`^[a-z0-9-]{1,64}$`)

const (
	// Provider limit on tokens per topic-management call
	subscribeBatchSize = 1000

	// Serialized data payloads above this size are stripped down to type/link
	maxDataBytes = 1024

	sendTimeout = 10 * time.Second
)

// pushUsecase implements PushUsecase
type pushUsecase struct {
	tokenRepo    repository.DeviceTokenRepository
	templateRepo repository.TemplateRepository
	prefRepo     repository.PreferenceRepository
	logRepo      repository.SendLogRepository
	messenger    fcm.Messenger
	cfg          *config.Config
}

// NewPushUsecase creates a new instance of pushUsecase. messenger may be nil
// when FCM is not configured; send and subscription calls then fail with
// ErrChannelDisabled.
func NewPushUsecase(
	tokenRepo repository.DeviceTokenRepository,
	templateRepo repository.TemplateRepository,
	prefRepo repository.PreferenceRepository,
	logRepo repository.SendLogRepository,
	messenger fcm.Messenger,
	cfg *config.Config,
) PushUsecase {
	return &pushUsecase{
		tokenRepo:    tokenRepo,
		templateRepo: templateRepo,
		prefRepo:     prefRepo,
		logRepo:      logRepo,
		messenger:    messenger,
		cfg:          cfg,
	}
}

// RegisterToken upserts a device token. The session member ID takes
// precedence over the one in the request body.
func (u *pushUsecase) RegisterToken(req *pushdto.RegisterTokenRequest, sessionMemberID string) error {
	owner := req.OwnerMemberID
	if sessionMemberID != "" {
		owner = &sessionMemberID
	}
	return u.tokenRepo.Upsert(&pushdomain.DeviceToken{
		AppType:       req.AppType,
		Platform:      req.Platform,
		Token:         req.Token,
		DeviceID:      req.DeviceID,
		OwnerMemberID: owner,
	})
}

// UnregisterToken deactivates a token (logical delete)
func (u *pushUsecase) UnregisterToken(token string) error {
	return u.tokenRepo.Deactivate(token)
}

func (u *pushUsecase) RenderTitle(templateCode string, vars map[string]interface{}) (string, error) {
	return u.render(templateCode, true, vars)
}

func (u *pushUsecase) RenderBody(templateCode string, vars map[string]interface{}) (string, error) {
	return u.render(templateCode, false, vars)
}

func (u *pushUsecase) render(code string, title bool, vars map[string]interface{}) (string, error) {
	tpl, err := u.templateRepo.FindByCode(code)
	if err != nil {
		return "", err
	}
	if tpl == nil {
		return "", fmt.Errorf("%w: %s", pushdomain.ErrTemplateNotFound, code)
	}
	src := tpl.BodyTemplate
	if title {
		src = tpl.TitleTemplate
	}
	return renderTemplate(src, vars), nil
}

// renderTemplate substitutes {key} placeholders in a single pass over src.
// Keys absent from vars stay as literal text, and replacement values are
// never re-scanned, so a value containing "{...}" cannot trigger a second
// substitution.
func renderTemplate(src string, vars map[string]interface{}) string {
	if len(vars) == 0 {
		return src
	}
	var out strings.Builder
	for i := 0; i < len(src); {
		if src[i] == '{' {
			if end := strings.IndexByte(src[i+1:], '}'); end >= 0 {
				key := src[i+1 : i+1+end]
				if v, ok := vars[key]; ok && isPlaceholderKey(key) {
					out.WriteString(fmt.Sprint(v))
					i += end + 2
					continue
				}
			}
		}
		out.WriteByte(src[i])
		i++
	}
	return out.String()
}

func isPlaceholderKey(key string) bool {
	if key == "" {
		return false
	}
	for _, c := range key {
		if c == '{' || c == '}' {
			return false
		}
	}
	return true
}

// SendToToken delivers a notification to a single device token and records
// the outcome in the send log. Failures are re-raised to the caller.
func (u *pushUsecase) SendToToken(appType pushdomain.AppType, token, title, body string, data map[string]string) (string, error) {
	if err := u.ensureChannel(); err != nil {
		return "", err
	}

	safeData := u.sanitizeData(data)
	msg := &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         safeData,
		Webpush:      u.webpushConfigFor(safeData),
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	msgID, err := u.messenger.Send(ctx, msg)
	if err != nil {
		log.Printf("[FCM] sendToToken failed: %v", err)
		u.persistLog(appType, "", token, title, body, safeData, "", err.Error())
		return "", fmt.Errorf("failed to send FCM message: %w", err)
	}
	u.persistLog(appType, "", token, title, body, safeData, msgID, "")
	return msgID, nil
}

// SendToTopic delivers a notification to a broadcast topic and records the
// outcome in the send log. Failures are re-raised to the caller.
func (u *pushUsecase) SendToTopic(appType pushdomain.AppType, topic, title, body string, data map[string]string) (string, error) {
	if err := u.ensureChannel(); err != nil {
		return "", err
	}

	topic, err := u.validateTopic(topic)
	if err != nil {
		return "", err
	}

	safeData := u.sanitizeData(data)
	msg := &messaging.Message{
		Topic:        topic,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         safeData,
		Webpush:      u.webpushConfigFor(safeData),
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	msgID, err := u.messenger.Send(ctx, msg)
	if err != nil {
		log.Printf("[FCM] sendToTopic failed: %v", err)
		u.persistLog(appType, topic, "", title, body, safeData, "", err.Error())
		return "", fmt.Errorf("failed to send FCM message: %w", err)
	}
	u.persistLog(appType, topic, "", title, body, safeData, msgID, "")
	return msgID, nil
}

// SubscribeToTopic subscribes all of the member's active HQ tokens to the
// topic in provider-sized batches. No active tokens is a no-op, and a failed
// batch does not abort the remaining batches.
func (u *pushUsecase) SubscribeToTopic(topic, memberID string) error {
	return u.manageTopic(topic, memberID, true)
}

// UnsubscribeFromTopic removes all of the member's active HQ tokens from the
// topic, with the same batching behavior as SubscribeToTopic.
func (u *pushUsecase) UnsubscribeFromTopic(topic, memberID string) error {
	return u.manageTopic(topic, memberID, false)
}

func (u *pushUsecase) manageTopic(topic, memberID string, subscribe bool) error {
	if err := u.ensureChannel(); err != nil {
		return err
	}
	topic, err := u.validateTopic(topic)
	if err != nil {
		return err
	}

	tokens, err := u.tokenRepo.FindActiveTokensForMember(pushdomain.AppHQ, memberID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		log.Printf("[FCM] topic change skipped (no active tokens) memberID=%s", memberID)
		return nil
	}

	op := "subscribeToTopic"
	if !subscribe {
		op = "unsubscribeFromTopic"
	}

	for start := 0; start < len(tokens); start += subscribeBatchSize {
		end := start + subscribeBatchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[start:end]

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		var res *fcm.BatchResult
		var batchErr error
		if subscribe {
			res, batchErr = u.messenger.SubscribeToTopic(ctx, batch, topic)
		} else {
			res, batchErr = u.messenger.UnsubscribeFromTopic(ctx, batch, topic)
		}
		cancel()

		if batchErr != nil {
			log.Printf("[FCM] %s failed (batch size=%d): %v", op, len(batch), batchErr)
			continue
		}
		log.Printf("[FCM] %s topic='%s' success=%d, failure=%d", op, topic, res.SuccessCount, res.FailureCount)
	}
	return nil
}

// UpsertPreference finds or creates the member's preference row and applies
// only the fields present in the request.
func (u *pushUsecase) UpsertPreference(memberID string, req *pushdto.PreferenceUpdateRequest) (*pushdomain.Preference, error) {
	row, err := u.prefRepo.FindByOwner(pushdomain.AppHQ, memberID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row = &pushdomain.Preference{
			AppType:       pushdomain.AppHQ,
			OwnerMemberID: memberID,
			CatNotice:     true,
			CatStockLow:   true,
			CatExpireSoon: true,
			ThresholdDays: pushdomain.DefaultThresholdDays,
		}
	}

	if req.CatNotice != nil {
		row.CatNotice = *req.CatNotice
	}
	if req.CatStockLow != nil {
		row.CatStockLow = *req.CatStockLow
	}
	if req.CatExpireSoon != nil {
		row.CatExpireSoon = *req.CatExpireSoon
	}
	if req.ThresholdDays != nil {
		row.ThresholdDays = *req.ThresholdDays
	}

	if err := u.prefRepo.Save(row); err != nil {
		return nil, err
	}
	return row, nil
}

// GetPreference returns the member's preference row, or nil when none exists
func (u *pushUsecase) GetPreference(memberID string) (*pushdomain.Preference, error) {
	return u.prefRepo.FindByOwner(pushdomain.AppHQ, memberID)
}

func (u *pushUsecase) RecentLogs(limit int) ([]pushdomain.SendLog, error) {
	return u.logRepo.FindRecent(limit)
}

func (u *pushUsecase) ensureChannel() error {
	if u.messenger == nil {
		return pushdomain.ErrChannelDisabled
	}
	return nil
}

// validateTopic normalizes the topic name and enforces the pattern and,
// when restrict mode is on, the fixed HQ allow-list.
func (u *pushUsecase) validateTopic(topic string) (string, error) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if !topicPattern.MatchString(topic) {
		return "", fmt.Errorf("%w: invalid topic pattern: %q", pushdomain.ErrTopicRejected, topic)
	}
	if u.cfg.TopicRestrict && !pushdomain.IsAllowedTopic(topic) {
		return "", fmt.Errorf("%w: topic not allowed in HQ: %q", pushdomain.ErrTopicRejected, topic)
	}
	return topic, nil
}

// sanitizeData keeps the serialized payload under the provider's practical
// limit: oversized maps are reduced to their type/link entries. A
// serialization failure passes the original map through unchanged.
func (u *pushUsecase) sanitizeData(data map[string]string) map[string]string {
	if len(data) == 0 {
		return map[string]string{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}
	if len(raw) <= maxDataBytes {
		return data
	}
	slim := map[string]string{}
	if v, ok := data["type"]; ok {
		slim["type"] = v
	}
	if v, ok := data["link"]; ok {
		slim["link"] = v
	}
	return slim
}

// webpushConfigFor builds the browser delivery envelope: TTL and urgency
// headers, icon/badge block, and the deep link (data.link, falling back to
// the configured default).
func (u *pushUsecase) webpushConfigFor(data map[string]string) *messaging.WebpushConfig {
	link := u.cfg.WebpushDefaultLink
	if v, ok := data["link"]; ok && strings.TrimSpace(v) != "" {
		link = v
	}

	ttl := u.cfg.WebpushTTLSeconds
	if ttl < 0 {
		ttl = 0
	}

	return &messaging.WebpushConfig{
		Headers: map[string]string{
			"TTL":     fmt.Sprintf("%d", ttl),
			"Urgency": u.cfg.WebpushUrgency,
		},
		Notification: &messaging.WebpushNotification{
			Icon:  u.cfg.WebpushIcon,
			Badge: u.cfg.WebpushBadge,
		},
		FCMOptions: &messaging.WebpushFCMOptions{Link: link},
	}
}

// persistLog appends one audit row per dispatch attempt. Logging is
// best-effort: a failure here is logged and never surfaced to the caller.
func (u *pushUsecase) persistLog(appType pushdomain.AppType, topic, token, title, body string,
	data map[string]string, msgID, sendErr string) {

	dataJSON := ""
	if len(data) > 0 {
		if raw, err := json.Marshal(data); err == nil {
			dataJSON = string(raw)
		}
	}

	row := &pushdomain.SendLog{
		AppType:         appType,
		Topic:           topic,
		Token:           token,
		Title:           title,
		Body:            body,
		DataJSON:        dataJSON,
		ResultMessageID: msgID,
		ResultError:     sendErr,
		SentAt:          time.Now(),
	}
	if err := u.logRepo.Append(row); err != nil {
		log.Printf("[FCM] persistLog failed: %v", err)
	}
}
