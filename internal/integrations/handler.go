package integrations

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ecosystem-backend/internal/integrations/platform"
	"resume-ecosystem-backend/internal/shared/server/middleware"
	"resume-ecosystem-backend/internal/shared/server/respond"
	"resume-ecosystem-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc           *Service
	WebhookSecret string
}

func NewHandler(svc *Service, webhookSecret string) *Handler {
	return &Handler{Svc: svc, WebhookSecret: webhookSecret}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/integrations", h.list)
	rg.POST("/integrations/connect/:platform", h.connect)
	rg.DELETE("/integrations/disconnect/:platform", h.disconnect)
	rg.POST("/integrations/sync/:platform", h.sync)
	rg.POST("/integrations/webhook/:platform", h.webhook)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list integrations", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"integrations": items, "count": len(items)})
}

type connectRequest struct {
	AccessToken    string `json:"accessToken"`
	RefreshToken   string `json:"refreshToken"`
	PlatformUserID string `json:"platformUserId"`
}

func (h *Handler) connect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "malformed body", nil)
		return
	}
	integration, err := h.Svc.Connect(c.Request.Context(), Integration{
		UserID:         middleware.UserIDFromContext(c),
		PlatformName:   c.Param("platform"),
		PlatformUserID: req.PlatformUserID,
		AccessToken:    req.AccessToken,
		RefreshToken:   req.RefreshToken,
	})
	if err != nil {
		if errors.Is(err, ErrUnsupportedPlatform) {
			respond.Error(c, http.StatusBadRequest, "unsupported_platform", "platform not supported", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to connect platform", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"platformName": integration.PlatformName,
		"connectedAt":  integration.ConnectedAt,
		"syncStatus":   integration.SyncStatus,
	})
}

func (h *Handler) disconnect(c *gin.Context) {
	err := h.Svc.Disconnect(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("platform"))
	if err != nil {
		if errors.Is(err, ErrNotConnected) {
			respond.Error(c, http.StatusNotFound, "not_found", "integration not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to disconnect platform", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "disconnected from " + c.Param("platform")})
}

func (h *Handler) sync(c *gin.Context) {
	result, err := h.Svc.Sync(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("platform"))
	if err != nil {
		var syncErr *SyncError
		switch {
		case errors.Is(err, ErrUnsupportedPlatform):
			respond.Error(c, http.StatusBadRequest, "unsupported_platform", "platform not supported", nil)
		case errors.Is(err, ErrNotConnected):
			respond.Error(c, http.StatusNotFound, "not_connected", "platform not connected", nil)
		case errors.Is(err, ErrSyncNotImplemented):
			respond.Error(c, http.StatusBadRequest, "sync_not_implemented", "sync not implemented for this platform", nil)
		case errors.Is(err, ErrSyncInProgress):
			respond.Error(c, http.StatusConflict, "sync_in_progress", "sync already in progress", nil)
		case errors.As(err, &syncErr):
			respond.Error(c, http.StatusBadGateway, "sync_failed", syncErr.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "sync failed", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

// webhook accepts platform push notifications. GitHub deliveries are
// verified with X-Hub-Signature-256 when a secret is configured; payloads
// are acknowledged and logged, matching upstream retry expectations.
func (h *Handler) webhook(c *gin.Context) {
	platformName := c.Param("platform")
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "unreadable body", nil)
		return
	}

	if platformName == platform.GitHub && h.WebhookSecret != "" {
		if !verifyGitHubSignature(h.WebhookSecret, body, c.GetHeader("X-Hub-Signature-256")) {
			respond.Error(c, http.StatusUnauthorized, "invalid_signature", "webhook signature mismatch", nil)
			return
		}
	}

	switch platformName {
	case platform.GitHub, platform.Coursera, platform.Devfolio:
		telemetry.Info("webhook.received", map[string]any{"platform": platformName, "bytes": len(body)})
	default:
		telemetry.Warn("webhook.unsupported_platform", map[string]any{"platform": platformName})
	}
	respond.JSON(c, http.StatusOK, gin.H{"received": true})
}

func verifyGitHubSignature(secret string, body []byte, header string) bool {
	const prefix = "sha256="
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header[len(prefix):]))
}
