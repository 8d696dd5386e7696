// Package bootstrap assembles the service graph from configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"docverify/internal/assistant"
	"docverify/internal/config"
	"docverify/internal/database"
	"docverify/internal/database/migration"
	"docverify/internal/events"
	"docverify/internal/hashing"
	handlers "docverify/internal/http/handler"
	"docverify/internal/http/middleware"
	"docverify/internal/history"
	"docverify/internal/metrics"
	"docverify/internal/recordstore"
	"docverify/internal/repository"
	"docverify/internal/repository/filesystem"
	"docverify/internal/repository/memory"
	"docverify/internal/repository/postgres"
	"docverify/internal/resilience"
	"docverify/internal/service"
	"docverify/internal/storage"
)

// App holds everything main needs to serve requests.
type App struct {
	Routes      handlers.Dependencies
	Registry    *prometheus.Registry
	HTTPMetrics *middleware.PrometheusMiddleware

	closers []func()
}

// Close releases connections in reverse order of acquisition.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.closers = nil
}

// Build wires the configured backends together. On error every resource
// acquired so far is released.
func Build(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{Registry: prometheus.NewRegistry()}
	if err := app.build(ctx, cfg, logger); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) build(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) error {
	var err error

	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if app.HTTPMetrics, err = middleware.NewPrometheusMiddleware(app.Registry); err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	uploadMetrics, err := metrics.NewUploadMetrics(app.Registry)
	if err != nil {
		return fmt.Errorf("register upload metrics: %w", err)
	}

	repo, err := app.stateRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}

	exec := resilience.NewExecutor(cfg.Resilience, logger)

	content, err := contentStorage(ctx, cfg, exec, logger)
	if err != nil {
		return err
	}

	anchor, err := newAnchor(cfg.Simulation, repo, logger)
	if err != nil {
		return err
	}

	pub, err := publisher(cfg.NATS, exec, logger)
	if err != nil {
		return err
	}
	app.closers = append(app.closers, pub.Close)

	hist := history.New(repo, logger)
	app.Routes = handlers.Dependencies{
		Health: repo,
		Documents: service.NewDocumentService(service.DocumentDeps{
			Records:     recordstore.NewDocumentStore(repo, logger),
			History:     hist,
			Engine:      hashing.NewEngine(anchor, logger),
			Content:     content,
			Events:      pub,
			Metrics:     uploadMetrics,
			Logger:      logger,
			UploadDelay: cfg.Simulation.UploadDelay,
		}),
		Sessions:  service.NewSessionService(repo, hist, service.NewLocalWalletProvider(), logger),
		History:   hist,
		Assistant: assistant.NewCanned(),
	}

	logger.Info("app_assembled",
		zap.String("state_backend", cfg.State.Backend),
		zap.String("content_backend", cfg.Simulation.ContentBackend),
		zap.String("anchor_network", anchor.Network()),
		zap.Bool("events_enabled", cfg.NATS.URL != ""),
	)
	return nil
}

func (app *App) stateRepository(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (repository.StateRepository, error) {
	switch cfg.State.Backend {
	case "memory":
		return memory.NewStateMemory(), nil
	case "file":
		repo, err := filesystem.NewStateFile(cfg.State.FileDir)
		if err != nil {
			return nil, fmt.Errorf("open state dir: %w", err)
		}
		return repo, nil
	case "postgres":
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		app.closers = append(app.closers, func() { _ = db.Close() })
		return migrated(ctx, db, cfg.Database.Host, logger)
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}

func migrated(ctx context.Context, db *sql.DB, host string, logger *zap.Logger) (repository.StateRepository, error) {
	if err := migration.EnsureMigrated(ctx, db, logger, host); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return postgres.NewStatePostgres(db), nil
}

func contentStorage(ctx context.Context, cfg *config.AppConfig, exec *resilience.Executor, logger *zap.Logger) (storage.Storage, error) {
	var next storage.Storage
	switch cfg.Simulation.ContentBackend {
	case "none":
		return nil, nil
	case "simulated":
		next = storage.NewSimulatedIPFS(cfg.Simulation.IPFSDelay, logger)
	case "minio":
		s, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("init object storage: %w", err)
		}
		next = s
	default:
		return nil, fmt.Errorf("unknown content backend %q", cfg.Simulation.ContentBackend)
	}
	return storage.NewResilient(next, exec), nil
}

func newAnchor(cfg config.SimulationConfig, repo repository.StateRepository, logger *zap.Logger) (hashing.Anchor, error) {
	switch cfg.AnchorMode {
	case "simulated":
		return hashing.NewSimulatedAnchor(cfg.ChainDelay, logger), nil
	case "hashchain":
		return hashing.NewHashChainAnchor(repo, logger), nil
	default:
		return nil, fmt.Errorf("unknown anchor mode %q", cfg.AnchorMode)
	}
}

func publisher(cfg config.NATSConfig, exec *resilience.Executor, logger *zap.Logger) (events.Publisher, error) {
	if cfg.URL == "" {
		return events.Noop{}, nil
	}
	p, err := events.NewNATS(cfg.URL, cfg.Subject, events.NATSOptions{Executor: exec, Logger: logger})
	if err != nil {
		return nil, err
	}
	return p, nil
}
