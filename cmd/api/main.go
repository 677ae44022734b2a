package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/jcdoncaster/shift-management-bot/internal/api/http"
	"github.com/jcdoncaster/shift-management-bot/internal/api/http/handlers"
	"github.com/jcdoncaster/shift-management-bot/internal/auth"
	"github.com/jcdoncaster/shift-management-bot/internal/command"
	"github.com/jcdoncaster/shift-management-bot/internal/config"
	"github.com/jcdoncaster/shift-management-bot/internal/events"
	"github.com/jcdoncaster/shift-management-bot/internal/observability"
	"github.com/jcdoncaster/shift-management-bot/internal/persistence"
	"github.com/jcdoncaster/shift-management-bot/internal/registry"
	"github.com/jcdoncaster/shift-management-bot/internal/service"
	"github.com/jcdoncaster/shift-management-bot/internal/worker"
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

	store, err := newSnapshotStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init snapshot store", zap.Error(err))
	}
	defer store.Close()

	manager := persistence.NewManager(store, persistence.JSONCodec{}, logger, cfg.Storage.SaveTimeout())
	snapshot := manager.Load(ctx)

	staffRegistry := registry.NewStaffRegistry(snapshot.Staff)
	tracker := registry.NewActiveShiftTracker()
	history := registry.NewShiftHistoryStore(snapshot.Shifts)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	engine := service.NewShiftEngine(cfg.Storage, service.Dependencies{
		Staff:      staffRegistry,
		Active:     tracker,
		History:    history,
		Dispatcher: dispatcher,
		Saver:      manager,
		Metrics:    metrics,
	})
	manager.SetProvider(engine.Snapshot)

	announcer := service.NewAnnouncer(dispatcher, logger, cfg.Announce)
	announcer.RegisterHandlers()

	managerDone := make(chan struct{})
	go func() {
		manager.Run(ctx)
		close(managerDone)
	}()

	autosave := worker.NewAutosaveWorker(manager, cfg.Storage.AutosaveInterval, logger)
	go autosave.Run(ctx)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)
	commandDispatcher := command.NewDispatcher(engine, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, manager),
		Staff:          handlers.NewStaffHandler(engine),
		Shifts:         handlers.NewShiftsHandler(engine),
		Admin:          handlers.NewAdminHandler(engine, tokens, cfg.Auth),
		Commands:       handlers.NewCommandsHandler(commandDispatcher),
		AuthMiddleware: authMiddleware,
	})

	logger.Info("service ready",
		zap.Int("staff", staffRegistry.Count()),
		zap.Int("shifts", history.Count()),
		zap.Int("active", tracker.Size()),
		zap.String("storage", cfg.Storage.Driver),
	)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	// Wait for the manager's final snapshot flush.
	<-managerDone
}

func newSnapshotStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (persistence.BlobStore, error) {
	switch cfg.Storage.Driver {
	case "redis":
		return persistence.NewRedisStore(cfg.Redis, cfg.Storage.RedisKey, logger), nil
	case "postgres":
		return persistence.NewPostgresStore(ctx, cfg.Postgres, logger)
	default:
		return persistence.NewFileStore(cfg.Storage.FilePath), nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
