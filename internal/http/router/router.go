package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mixaura/agency-backend/internal/config"
	"github.com/mixaura/agency-backend/internal/http/handlers"
	"github.com/mixaura/agency-backend/internal/http/middleware"
	"github.com/mixaura/agency-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	generatorHandler *handlers.GeneratorHandler,
	portfolioHandler *handlers.PortfolioHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
	roleService *service.RoleService,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Публичные маршруты
	api.GET("/portfolio", portfolioHandler.List)
	api.GET("/portfolio/:id", middleware.UUIDValidator("id"), portfolioHandler.Get)

	// Генерация доступна без авторизации, но с лимитом запросов
	generateGroup := api.Group("/")
	generateGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		generateGroup.POST("/generate", generatorHandler.Generate)
	}

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/admin/status", adminHandler.Status)
	}

	// Маршруты администратора: роль проверяется в хранилище на каждый запрос
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.AdminMiddleware(roleService))
	{
		admin.POST("/portfolio", portfolioHandler.Create)
		admin.PUT("/portfolio/:id", middleware.UUIDValidator("id"), portfolioHandler.Update)
		admin.DELETE("/portfolio/:id", middleware.UUIDValidator("id"), portfolioHandler.Delete)
	}

	return r
}
