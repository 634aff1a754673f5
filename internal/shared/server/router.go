package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-ecosystem-backend/internal/integrations"
	"resume-ecosystem-backend/internal/records"
	"resume-ecosystem-backend/internal/resumes"
	"resume-ecosystem-backend/internal/shared/config"
	"resume-ecosystem-backend/internal/shared/metrics"
	"resume-ecosystem-backend/internal/shared/server/middleware"
	"resume-ecosystem-backend/internal/shared/server/respond"
	"resume-ecosystem-backend/internal/users"
)

// RouterDeps carries the handlers built in bootstrap.
type RouterDeps struct {
	Config             config.Config
	UsersHandler       *users.Handler
	RecordsHandler     *records.Handler
	ResumesHandler     *resumes.Handler
	IntegrationHandler *integrations.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: func(c *gin.Context) string {
				if strings.HasPrefix(c.FullPath(), "/api/v1/integrations/sync/") {
					return "SYNC"
				}
				return ""
			},
			Rules: map[string]middleware.RateLimitRule{
				"SYNC": {Rate: 0.2, Burst: 2},
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.UsersHandler.RegisterRoutes(api)
	deps.RecordsHandler.RegisterRoutes(api)
	deps.ResumesHandler.RegisterRoutes(api)
	deps.IntegrationHandler.RegisterRoutes(api)
	if deps.Config.Env == "dev" || deps.Config.Env == "local" {
		api.GET("/metrics", metrics.Handler())
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
