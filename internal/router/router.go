package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/student-records/internal/config"
	"github.com/stemsi/student-records/internal/handler"
	"github.com/stemsi/student-records/internal/logger"
	"github.com/stemsi/student-records/internal/middleware"
	"github.com/stemsi/student-records/internal/response"
	"github.com/stemsi/student-records/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Student *handler.StudentHandler
	Health  *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// authLimiter guards register and login.
func SetupRouter(
	cfg *config.Config,
	tokens *service.TokenService,
	authLimiter middleware.Limiter,
	handlers *Handlers,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log and every envelope share it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(logger.Component(log, "http")))
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.Health.Health)

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	api := router.Group("/api")

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := api.Group("")
	auth.Use(
		middleware.RateLimit(authLimiter, logger.Component(log, "rate_limit")),
		middleware.NoStore(),
	)
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	// ─── 2. Protected Group (JWT) ──────────────────────────────────────
	protected := api.Group("")
	protected.Use(middleware.RequireJWT(tokens))
	{
		protected.POST("/change-password", handlers.Auth.ChangePassword)
		protected.GET("/me", handlers.Auth.Me)

		students := protected.Group("/students")
		{
			students.GET("", handlers.Student.ListStudents)
			students.POST("", handlers.Student.CreateStudent)
			students.GET("/:id", handlers.Student.GetStudent)
			students.PUT("/:id", handlers.Student.ReplaceStudent)
			students.PATCH("/:id", handlers.Student.PatchStudent)
			students.DELETE("/:id", handlers.Student.DeleteStudent)
		}
	}

	return router
}
