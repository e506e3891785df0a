package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mockdesk/mockdesk-backend/internal/config"
	"github.com/mockdesk/mockdesk-backend/internal/handler"
	"github.com/mockdesk/mockdesk-backend/internal/middleware"
	"github.com/mockdesk/mockdesk-backend/internal/response"
	"github.com/mockdesk/mockdesk-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Mock     *handler.MockHandler
	Section  *handler.SectionHandler
	Question *handler.QuestionHandler
	Media    *handler.MediaHandler
	Events   *handler.EventsHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Authoring Group (JWT) ──────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		// Media upload
		api.POST("/media/upload", handlers.Media.UploadMedia)

		// Mock management
		api.GET("/mocks", handlers.Mock.ListMocks)
		api.POST("/mocks", handlers.Mock.CreateMock)
		api.GET("/mocks/:mock_id", handlers.Mock.GetMock)
		api.PUT("/mocks/:mock_id", handlers.Mock.UpdateMock)
		api.DELETE("/mocks/:mock_id", handlers.Mock.DeleteMock)
		api.GET("/mocks/:mock_id/editor", handlers.Mock.GetEditor)

		// Sections
		api.GET("/mocks/:mock_id/sections", handlers.Section.ListSections)
		api.POST("/mocks/:mock_id/sections", handlers.Section.CreateSection)

		// Questions
		api.GET("/mocks/:mock_id/questions", handlers.Question.ListQuestions)
		api.POST("/mocks/:mock_id/questions", handlers.Question.CreateQuestion)
	}

	// ─── 3. WebSocket Group (WS Auth via ?token=) ──────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/mocks/:mock_id/events", handlers.Events.MockEventsStream)
	}

	return router
}
