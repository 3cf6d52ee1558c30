package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriboost-backend/internal/analyses"
	googleauth "agriboost-backend/internal/auth"
	"agriboost-backend/internal/results"
	"agriboost-backend/internal/services/health"
	"agriboost-backend/internal/session"
	"agriboost-backend/internal/shared/config"
	"agriboost-backend/internal/shared/metrics"
	"agriboost-backend/internal/shared/server/middleware"
	"agriboost-backend/internal/tray"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	TrayHandler     *tray.Handler
	AnalysisHandler *analyses.Handler
	ResultsHandler  *results.Handler
	GoogleAuth      *googleauth.GoogleService
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
		session.Middleware(),
		middleware.Auth(deps.Config.Env),
	)

	r.GET("/metrics", metrics.Handler())
	deps.ResultsHandler.RegisterPage(r)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Health.Status(c.Request.Context()))
	})

	deps.GoogleAuth.RegisterRoutes(api)
	deps.TrayHandler.RegisterRoutes(api)
	deps.ResultsHandler.RegisterAPI(api)

	// Analysis runs Gemini calls inline, so it gets its own budget.
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYZE": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/analyze-farm-data" {
				return "ANALYZE"
			}
			return ""
		},
	}))
	deps.AnalysisHandler.RegisterRoutes(api)

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
