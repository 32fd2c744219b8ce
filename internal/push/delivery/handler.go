package delivery

import (
	"errors"
	"net/http"
	"strconv"

	pushdomain "hqadmin-backend/internal/push/domain"
	pushdto "hqadmin-backend/internal/push/dto"
	"hqadmin-backend/internal/push/usecase"

	"github.com/gin-gonic/gin"
)

// PushHandler exposes the FCM admin surface: token registry, template
// preview, test sends, preferences and the send-log viewer.
type PushHandler struct {
	pushUsecase usecase.PushUsecase
}

// NewPushHandler creates a new instance of PushHandler
func NewPushHandler(pushUsecase usecase.PushUsecase) *PushHandler {
	return &PushHandler{pushUsecase: pushUsecase}
}

// RegisterToken handles POST /api/fcm/register
func (h *PushHandler) RegisterToken(c *gin.Context) {
	var req pushdto.RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.pushUsecase.RegisterToken(&req, c.GetString("memberID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UnregisterToken handles DELETE /api/fcm/register/:token
func (h *PushHandler) UnregisterToken(c *gin.Context) {
	if err := h.pushUsecase.UnregisterToken(c.Param("token")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unregister token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PreviewTemplate handles POST /api/fcm/template/preview
func (h *PushHandler) PreviewTemplate(c *gin.Context) {
	var req pushdto.TemplatePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.pushUsecase.RenderTitle(req.TemplateCode, req.Variables)
	if err != nil {
		respondPushError(c, err)
		return
	}
	body, err := h.pushUsecase.RenderBody(req.TemplateCode, req.Variables)
	if err != nil {
		respondPushError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": title, "body": body})
}

// SendTest handles POST /api/fcm/send/test
func (h *PushHandler) SendTest(c *gin.Context) {
	var req pushdto.TestSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var msgID string
	var err error
	if req.Topic {
		msgID, err = h.pushUsecase.SendToTopic(pushdomain.AppHQ, req.TokenOrTopic, req.Title, req.Body, req.Data)
	} else {
		msgID, err = h.pushUsecase.SendToToken(pushdomain.AppHQ, req.TokenOrTopic, req.Title, req.Body, req.Data)
	}
	if err != nil {
		respondPushError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": msgID})
}

// GetMyPreference handles GET /api/fcm/pref/me. Missing rows fall back to
// the documented defaults in the response; the row itself is not created.
func (h *PushHandler) GetMyPreference(c *gin.Context) {
	memberID := c.GetString("memberID")
	pref, err := h.pushUsecase.GetPreference(memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preference"})
		return
	}

	resp := gin.H{
		"member_id":       memberID,
		"cat_notice":      true,
		"cat_stock_low":   true,
		"cat_expire_soon": true,
		"threshold_days":  pushdomain.DefaultThresholdDays,
	}
	if pref != nil {
		resp["cat_notice"] = pref.CatNotice
		resp["cat_stock_low"] = pref.CatStockLow
		resp["cat_expire_soon"] = pref.CatExpireSoon
		resp["threshold_days"] = pref.ThresholdDays
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMyPreference handles POST /api/fcm/pref/me
func (h *PushHandler) UpdateMyPreference(c *gin.Context) {
	var req pushdto.PreferenceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID := c.GetString("memberID")
	saved, err := h.pushUsecase.UpsertPreference(memberID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preference"})
		return
	}

	apply := req.ApplySubscriptions == nil || *req.ApplySubscriptions
	if apply {
		h.applySubscription(req.CatStockLow, pushdomain.TopicStockLow, memberID)
		h.applySubscription(req.CatExpireSoon, pushdomain.TopicExpireSoon, memberID)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "pref_id": saved.ID})
}

// applySubscription reflects one category flag change onto the matching HQ
// topic. Subscription errors are already logged by the usecase; they do not
// fail the preference update.
func (h *PushHandler) applySubscription(flag *bool, topic, memberID string) {
	if flag == nil {
		return
	}
	if *flag {
		_ = h.pushUsecase.SubscribeToTopic(topic, memberID)
	} else {
		_ = h.pushUsecase.UnsubscribeFromTopic(topic, memberID)
	}
}

// RecentLogs handles GET /api/fcm/logs?limit=
func (h *PushHandler) RecentLogs(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	rows, err := h.pushUsecase.RecentLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

func respondPushError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pushdomain.ErrChannelDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, pushdomain.ErrTopicRejected), errors.Is(err, pushdomain.ErrTemplateNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
