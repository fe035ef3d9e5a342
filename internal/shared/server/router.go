package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/coverletters"
	"coverletter-backend/internal/resumes"
	"coverletter-backend/internal/services/health"
	"coverletter-backend/internal/shared/config"
	"coverletter-backend/internal/shared/metrics"
	"coverletter-backend/internal/shared/server/middleware"
	"coverletter-backend/internal/shared/server/respond"
	"coverletter-backend/internal/uploads"
)

const rateLimitGroupGenerate = "GENERATE"

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config             config.Config
	ResumeHandler      *resumes.Handler
	CoverLetterHandler *coverletters.Handler
	UploadsHandler     *uploads.Handler
	Health             *health.Service
	RateLimiter        *middleware.RateLimiter
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

	generateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: rateLimitGroupGenerate,
		Limiter:      deps.RateLimiter,
		Rules: map[string]middleware.RateLimitRule{
			rateLimitGroupGenerate: {Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst},
		},
	})

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"name":     "cover-letter-backend",
			"status":   "ok",
			"renderer": deps.Config.Renderer,
			"provider": deps.Config.LLMProvider,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		st := deps.Health.Check(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})
	r.GET("/metrics", metrics.Handler())

	root := &r.RouterGroup
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(root)
	}
	if deps.CoverLetterHandler != nil {
		deps.CoverLetterHandler.RegisterRoutes(root, generateLimit)
	}
	if deps.UploadsHandler != nil {
		deps.UploadsHandler.RegisterRoutes(root)
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
