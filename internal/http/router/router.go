package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/homeservice-backend/internal/config"
	"github.com/ignatzorin/homeservice-backend/internal/http/handlers"
	"github.com/ignatzorin/homeservice-backend/internal/http/middleware"
	"github.com/ignatzorin/homeservice-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	requestHandler *handlers.RequestHandler,
	professionalHandler *handlers.ProfessionalHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/sessions", authHandler.ListSessions)
		protectedAuth.DELETE("/sessions/:id", authHandler.DeleteSession)
		protectedAuth.DELETE("/sessions", authHandler.DeleteAllSessionsExcept)
	}

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/users/:id", middleware.UUIDValidator("id"), profileHandler.GetUserProfile)
	api.GET("/professionals", professionalHandler.List)
	api.GET("/professionals/:id", middleware.UUIDValidator("id"), professionalHandler.Get)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", profileHandler.GetMe)
		protected.PUT("/profile", profileHandler.UpdateMe)

		protected.POST("/requests", requestHandler.Create)
		protected.GET("/requests/my-requests", requestHandler.ListMy)
		protected.GET("/requests/incoming", requestHandler.ListIncoming)
		protected.GET("/requests/:id", middleware.UUIDValidator("id"), requestHandler.Get)
		protected.POST("/requests/:id/send", middleware.UUIDValidator("id"), requestHandler.Send)
		protected.PUT("/requests/:id/status", middleware.UUIDValidator("id"), requestHandler.UpdateStatus)
	}

	return r
}
