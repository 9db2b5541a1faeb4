package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kseleznev/url-alias/internal/config"
	"github.com/kseleznev/url-alias/internal/handler"
	"github.com/kseleznev/url-alias/internal/repository"
	"github.com/kseleznev/url-alias/internal/service"
	"github.com/kseleznev/url-alias/internal/shortcode"
	"go.uber.org/zap"
)

func main() {
	// Загрузка конфига
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Подключение к БД (postgres)
	db, err := repository.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Применение миграций
	if err := db.Migrate(context.Background()); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Инициализация репозиториев
	accountRepo := repository.NewAccountRepository(db)
	aliasRepo := repository.NewAliasRepository(db)
	clickRepo := repository.NewClickRepository(db)

	// Инициализация сервисов
	authService := service.NewAuthService(accountRepo)
	clickRecorder := service.NewClickRecorder(clickRepo)
	aliasService := service.NewAliasService(
		aliasRepo,
		clickRecorder,
		shortcode.New(cfg.Alias.CodeLength),
		service.AliasConfig{
			ValidityDays:        cfg.Alias.ValidityDays,
			MaxGenerateAttempts: cfg.Alias.MaxGenerateAttempts,
		},
	)
	statsAggregator := service.NewStatsAggregator(aliasRepo, clickRepo, cfg.App.BaseURL)

	// Настройка роутера
	router := handler.NewRouter(authService, aliasService, statsAggregator, logger, cfg.App.BaseURL)

	// Запуск сервера
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запуск в горутине
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
