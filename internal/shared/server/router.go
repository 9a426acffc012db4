package server

import (
	"github.com/gin-gonic/gin"

	"wealth-backend/internal/documents"
	"wealth-backend/internal/networth"
	"wealth-backend/internal/services/health"
	"wealth-backend/internal/shared/config"
	"wealth-backend/internal/shared/metrics"
	"wealth-backend/internal/shared/server/middleware"
)

// RouterDeps holds the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	NetWorthHandler *networth.Handler
	Health          *health.Service
	RateLimit       *middleware.RateLimitConfig
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	if deps.Config.RateLimitEnabled {
		cfg := middleware.DefaultRateLimitConfig()
		if deps.RateLimit != nil {
			cfg = *deps.RateLimit
		}
		r.Use(middleware.RateLimit(cfg))
	}

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.NetWorthHandler != nil {
		deps.NetWorthHandler.RegisterRoutes(api)
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
