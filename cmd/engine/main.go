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

	"fritter/internal/config"
	"fritter/internal/database"
	"fritter/internal/engine"
	"fritter/internal/engine/actors"
	"fritter/internal/handlers"
	"fritter/internal/logging"
	"fritter/internal/middleware"
	"fritter/internal/resolver"
	"fritter/internal/utils"
	"fritter/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

// app holds everything main starts and must later stop.
type app struct {
	cfg     *config.Config
	db      database.DBAdapter
	system  *actor.ActorSystem
	hub     *websocket.Hub
	handler http.Handler
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer a.close()

	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	go a.hub.Run(hubCtx)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr, "database", cfg.Database.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openDatabase(ctx context.Context, cfg *config.DatabaseConfig) (database.DBAdapter, error) {
	switch cfg.Type {
	case config.DBTypeMemory:
		slog.Warn("using in-memory database, data will not survive a restart")
		return database.NewMemoryDB(), nil
	default:
		return database.NewMongoDB(ctx, cfg.URI, cfg.Name)
	}
}

// newApp wires the store, actors and router.
func newApp(ctx context.Context, cfg *config.Config, db database.DBAdapter) (*app, error) {
	if err := db.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	metrics := utils.NewMetricsCollector()
	rv := resolver.New(db, cfg.MaxReferenceDepth)
	hub := websocket.NewHub()
	tokens := middleware.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, actors.Deps{
		DB:       db,
		Resolver: rv,
		Hub:      hub,
		Metrics:  metrics,
	}, tokens)

	server := handlers.NewServer(system, eng, db, rv, metrics, hub, tokens)
	server.RequestTimeout = cfg.Server.RequestTimeout
	server.AllowedOrigins = cfg.AllowedOrigins

	return &app{
		cfg:    cfg,
		db:     db,
		system: system,
		hub:    hub,
		handler: server.NewRouter(handlers.RouterOptions{
			MetricsEnabled: cfg.Server.MetricsEnabled,
			Logger:         slog.Default(),
		}),
	}, nil
}

func (a *app) close() {
	a.system.Shutdown()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.db.Close(ctx); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}
