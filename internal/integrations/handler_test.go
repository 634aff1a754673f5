package integrations

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-ecosystem-backend/internal/integrations/platform"
	"resume-ecosystem-backend/internal/records"
)

func newWebhookRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(NewMemoryRepo(), platform.NewRegistry(), records.NewMemoryRepo(), nil, nil)
	handler := NewHandler(svc, secret)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookAcceptsValidGitHubSignature(t *testing.T) {
	router := newWebhookRouter("hook-secret")
	body := []byte(`{"action": "push"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/webhook/github", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", signBody("hook-secret", body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestWebhookRejectsBadGitHubSignature(t *testing.T) {
	router := newWebhookRouter("hook-secret")
	body := []byte(`{"action": "push"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/webhook/github", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", signBody("wrong-secret", body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookSkipsVerificationWithoutSecret(t *testing.T) {
	router := newWebhookRouter("")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/webhook/github", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestWebhookUnknownPlatformStillAcknowledged(t *testing.T) {
	router := newWebhookRouter("")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/webhook/myspace", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
