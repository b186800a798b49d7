package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blazegg/tournament-hub/config"
	"github.com/blazegg/tournament-hub/db"
	"github.com/blazegg/tournament-hub/github"
	"github.com/blazegg/tournament-hub/handlers"
	"github.com/blazegg/tournament-hub/repositories"
	api "github.com/blazegg/tournament-hub/routes"
	"github.com/blazegg/tournament-hub/services"
	"github.com/blazegg/tournament-hub/storage"
	_ "github.com/lib/pq"
)

const schedulerInterval = 30 * time.Second // Как часто закрываем просроченные регистрации

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Выбор хранилища: postgres при заданном DATABASE_URL, иначе in-memory
	var store repositories.Storage
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		}()

		if err := db.EnsureSchema(context.Background(), dbConn); err != nil {
			logger.Error("failed to ensure database schema", slog.Any("error", err))
			os.Exit(1)
		}
		store = repositories.NewPostgresStorage(dbConn)
		logger.Info("postgres storage initialized")
	} else {
		store = repositories.NewMemStorage()
		logger.Info("in-memory storage initialized")
	}

	if cfg.SeedDemoData {
		if err := repositories.Seed(context.Background(), store); err != nil {
			logger.Error("failed to seed demo data", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("demo data seeded")
	}

	// Инициализация загрузчика файлов (Cloudflare R2), если сконфигурирован
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("file uploads disabled: R2 is not configured")
	}

	// Инициализация сервисов
	authService := services.NewAuthService(store)
	tournamentService := services.NewTournamentService(store)
	teamService := services.NewTeamService(store, uploader)
	matchService := services.NewMatchService(store)
	profileService := services.NewProfileService(store)
	githubClient := github.NewClient(cfg.GitHubAPIBaseURL, store)
	logger.Info("services initialized")

	// Планировщик закрытия просроченных регистраций
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("registration scheduler started", slog.Duration("interval", schedulerInterval))

		for range ticker.C {
			closed, err := tournamentService.CloseExpiredRegistrations(context.Background(), time.Now().UTC())
			if err != nil {
				logger.Error("scheduler: failed to close expired registrations", slog.Any("error", err))
				continue
			}
			if closed > 0 {
				logger.Info("scheduler: closed expired registrations", slog.Int("count", closed))
			}
		}
	}()

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		User:       handlers.NewUserHandler(authService, profileService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Team:       handlers.NewTeamHandler(teamService),
		Match:      handlers.NewMatchHandler(matchService),
		GitHub:     handlers.NewGitHubHandler(githubClient),
	}

	router := api.SetupRoutes(h, []byte(cfg.JWTSecretKey), cfg.AdminEmail)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
