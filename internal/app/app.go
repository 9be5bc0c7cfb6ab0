package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/eventhub-backend/internal/adapter/docstore"
	"github.com/heartmarshall/eventhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/eventhub-backend/internal/config"
	"github.com/heartmarshall/eventhub-backend/internal/transport/middleware"
	"github.com/heartmarshall/eventhub-backend/internal/transport/rest"
)

// Infra holds the connections the services run on.
type Infra struct {
	Pool     *pgxpool.Pool
	DocStore *docstore.Client
	Redis    *redis.Client
}

// Connect opens the database pool, the document store client and, when the
// cache is enabled, the Redis client.
func Connect(ctx context.Context, cfg *config.Config) (*Infra, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	client, err := docstore.Connect(ctx, cfg.DocStore)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to document store: %w", err)
	}

	infra := &Infra{Pool: pool, DocStore: client}
	if cfg.Cache.Enabled {
		infra.Redis = docstore.NewRedisClient(cfg.Cache)
	}
	return infra, nil
}

// Close releases all connections.
func (i *Infra) Close(ctx context.Context) {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	_ = i.DocStore.Disconnect(ctx)
	i.Pool.Close()
}

// HealthComponents lists the dependencies probed by /ready and /health.
func (i *Infra) HealthComponents() []rest.Component {
	components := []rest.Component{
		{Name: "database", Pinger: i.Pool},
		{Name: "docstore", Pinger: i.DocStore},
	}
	if i.Redis != nil {
		rdb := i.Redis
		components = append(components, rest.Component{
			Name:   "cache",
			Pinger: rest.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		})
	}
	return components
}

// Run is the worker entry point. It connects to the stores, schedules the
// background jobs and serves the health probes until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting worker",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	infra, err := Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		infra.Close(closeCtx)
	}()

	svcs := NewServices(logger, cfg, infra.Pool, NewDocumentStores(logger, infra.DocStore, infra.Redis, cfg))

	scheduler := NewScheduler(logger, cfg.Worker.JobTimeout)
	if err := scheduler.Add(Jobs(svcs, cfg.Worker)...); err != nil {
		return err
	}
	scheduler.Start(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      opsHandler(logger, infra.HealthComponents()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("ops server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			logger.Error("ops server failed", slog.String("error", err.Error()))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ops server shutdown", slog.String("error", err.Error()))
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown", slog.String("error", err.Error()))
	}

	logger.Info("worker stopped", slog.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout))
	return nil
}

func opsHandler(logger *slog.Logger, components []rest.Component) http.Handler {
	mux := http.NewServeMux()
	rest.NewHealthHandler(BuildVersion(), components...).Routes(mux)

	return middleware.Chain(mux,
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
	)
}
