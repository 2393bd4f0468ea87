package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leasing-backend/internal/services/health"
	"leasing-backend/internal/shared/config"
	"leasing-backend/internal/shared/metrics"
	"leasing-backend/internal/shared/server/middleware"
	"leasing-backend/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps bundles the handlers mounted under /api/v1. Nil handlers are skipped.
type RouterDeps struct {
	Config             config.Config
	DocumentHandler    RouteRegistrar
	ApplicationHandler RouteRegistrar
	ContractHandler    RouteRegistrar
	FlagHandler        RouteRegistrar
	Health             *health.Service
	// RateLimits overrides DefaultRateLimits when non-nil.
	RateLimits map[string]middleware.Rule
}

// DefaultRateLimits are per caller.
func DefaultRateLimits() map[string]middleware.Rule {
	return map[string]middleware.Rule{
		middleware.GroupRead:  {Rate: 20, Burst: 40},
		middleware.GroupWrite: {Rate: 5, Burst: 10},
	}
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
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	rules := deps.RateLimits
	if rules == nil {
		rules = DefaultRateLimits()
	}
	authed := api.Group("", middleware.Auth(), middleware.RateLimit(middleware.RateLimitConfig{Rules: rules}))
	for _, h := range []RouteRegistrar{deps.DocumentHandler, deps.ApplicationHandler, deps.ContractHandler, deps.FlagHandler} {
		if h != nil {
			h.RegisterRoutes(authed)
		}
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
