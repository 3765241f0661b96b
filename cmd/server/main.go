package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mixaura/agency-backend/internal/ai"
	"github.com/mixaura/agency-backend/internal/config"
	"github.com/mixaura/agency-backend/internal/db"
	httpHandlers "github.com/mixaura/agency-backend/internal/http/handlers"
	httpRouter "github.com/mixaura/agency-backend/internal/http/router"
	"github.com/mixaura/agency-backend/internal/logger"
	"github.com/mixaura/agency-backend/internal/repository"
	"github.com/mixaura/agency-backend/internal/service"
	"github.com/mixaura/agency-backend/internal/storage"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Инициализируем вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.PublicBaseURL, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	roleRepo := repository.NewRoleRepository(dbConn)
	portfolioRepo := repository.NewPortfolioRepository(dbConn)

	// AI клиенты. Без ключа генерация картинок выключается,
	// элементы остаются с плейсхолдерами.
	var textGen service.StructuredGenerator
	if cfg.AIBaseURL != "" && cfg.AIModel != "" {
		textGen = ai.NewClient(cfg.AIBaseURL, cfg.AIModel)
	}

	var imageGen service.ImageGenerator
	if cfg.GeminiAPIKey != "" {
		imagenClient, err := ai.NewImagenClient(ctx, cfg.GeminiAPIKey, cfg.ImageModel)
		if err != nil {
			log.Fatalf("main: не удалось создать клиент генерации изображений: %v", err)
		}
		imageGen = imagenClient
	} else {
		log.Printf("main: GEMINI_API_KEY не задан, генерация изображений отключена")
	}

	// Сервисы.
	roleService := service.NewRoleService(roleRepo)
	authService := service.NewAuthService(userRepo, roleService, tokenManager, cfg.AdminEmail)
	portfolioService := service.NewPortfolioService(portfolioRepo, photoStorage)
	generatorService := service.NewGeneratorService(textGen, imageGen)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	generatorHandler := httpHandlers.NewGeneratorHandler(generatorService)
	portfolioHandler := httpHandlers.NewPortfolioHandler(portfolioService)
	adminHandler := httpHandlers.NewAdminHandler(roleService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, generatorHandler, portfolioHandler, adminHandler, healthHandler, tokenManager, roleService)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
