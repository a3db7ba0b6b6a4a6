package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumegen-backend/internal/auth"
	"resumegen-backend/internal/config"
	"resumegen-backend/internal/generate"
	"resumegen-backend/internal/metrics"
	"resumegen-backend/internal/respond"
	"resumegen-backend/internal/server/middleware"
	"resumegen-backend/internal/users"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Config          config.Config
	Sessions        auth.SessionStore
	UsersHandler    *users.Handler
	GenerateHandler *generate.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Registration, activation and login are public; everything else sits behind
// the session middleware. Generation endpoints are additionally rate limited
// because every call hits the metered model endpoint.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	authPublic := r.Group("/auth")
	deps.UsersHandler.RegisterPublicRoutes(authPublic)

	authProtected := r.Group("/auth")
	authProtected.Use(middleware.Session(deps.Sessions))
	deps.UsersHandler.RegisterProtectedRoutes(authProtected)

	resume := r.Group("/resume")
	resume.Use(
		middleware.Session(deps.Sessions),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "GENERATION",
			Rules: map[string]middleware.RateLimitRule{
				"GENERATION": {Rate: 0.5, Burst: 5},
			},
		}),
	)
	deps.GenerateHandler.RegisterRoutes(resume)

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
