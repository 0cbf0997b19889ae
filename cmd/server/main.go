package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmaraujo/treinos/internal/api"
	"github.com/dmaraujo/treinos/internal/factory"
	"github.com/dmaraujo/treinos/internal/services/auth"
	redisstorage "github.com/dmaraujo/treinos/internal/storage/redis"
)

func main() {
	// Load .env if present, real environment takes precedence
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("TREINOS_STORAGE_TYPE"),
	}

	if raw := os.Getenv("TREINOS_RESET_HOUR"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil {
			logger.Error("invalid TREINOS_RESET_HOUR", slog.String("value", raw))
			os.Exit(1)
		}
		cfg.ResetHour = hour
	}

	if admin := os.Getenv("TREINOS_ADMIN_CHARACTER"); admin != "" {
		authCfg := auth.DefaultConfig()
		authCfg.AdminCharacter = admin
		cfg.AuthConfig = authCfg
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("TREINOS_REDIS_URL")
		if redisURL == "" {
			logger.Error("TREINOS_REDIS_URL required when TREINOS_STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		Tracker:         app.TrackerController,
		EarningsService: app.EarningsService,
		ActivityService: app.ActivityService,
		SkillsService:   app.SkillsService,
		Days:            app.TrainingDayService,
		Clock:           app.Clock,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if raw := os.Getenv("TREINOS_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			logger.Error("invalid TREINOS_PORT", slog.String("value", raw))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sweep expired sessions in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				app.AuthService.CleanExpiredSessions()
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
