package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Sidnaik04/YT-Assistant/internal/api/http"
	"github.com/Sidnaik04/YT-Assistant/internal/api/http/handlers"
	"github.com/Sidnaik04/YT-Assistant/internal/auth"
	"github.com/Sidnaik04/YT-Assistant/internal/config"
	"github.com/Sidnaik04/YT-Assistant/internal/events"
	"github.com/Sidnaik04/YT-Assistant/internal/observability"
	"github.com/Sidnaik04/YT-Assistant/internal/persistence"
	"github.com/Sidnaik04/YT-Assistant/internal/repository"
	"github.com/Sidnaik04/YT-Assistant/internal/service"
	"github.com/Sidnaik04/YT-Assistant/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	requestLogRepo := repository.NewRequestLogRepository(pool)

	blacklist := auth.NewRedisBlacklist(redis.Client)
	authService, err := service.NewAuthService(cfg.Auth, userRepo, blacklist, logger)
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), blacklist)

	videoService, err := service.NewVideoService(cfg.Video, logger)
	if err != nil {
		logger.Fatal("failed to init video service", zap.Error(err))
	}

	encoder, err := service.NewTiktokenEncoder()
	if err != nil {
		logger.Fatal("failed to load tokenizer", zap.Error(err))
	}
	summaryService := service.NewSummaryService(cfg.Summary, encoder, service.NewGeminiClient(cfg.Summary), redis.Client, logger)

	dispatcher := events.NewInMemoryDispatcher()
	requestLogService := service.NewRequestLogService(dispatcher, requestLogRepo, logger)
	worker.StartRequestLogWorker(requestLogService)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	videosHandler := handlers.NewVideosHandler(videoService, summaryService, dispatcher)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Videos:         videosHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
