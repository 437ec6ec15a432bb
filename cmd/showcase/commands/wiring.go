package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/eeese/showcase/internal/adapter/backend"
	"github.com/eeese/showcase/internal/adapter/sqlite"
	"github.com/eeese/showcase/internal/config"
	"github.com/eeese/showcase/internal/domain/event"
	"github.com/eeese/showcase/internal/logger"
	"github.com/eeese/showcase/internal/port"
	"github.com/eeese/showcase/internal/service/repository"
	"github.com/eeese/showcase/internal/service/syncer"
)

// app holds the services wired for one command invocation
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	store      *sqlite.Store
	dispatcher *event.InMemoryDispatcher
	metrics    *event.MetricsHandler
	projects   *repository.ProjectRepository
	events     *repository.EventRepository
}

// open loads configuration and wires the local store, the remote source and
// the repositories in front of them.
func (c *CLI) open() (*app, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetZapLogger()

	store, err := sqlite.Open(cfg.Database.Path, &sqlite.Options{
		BusyTimeoutMs: cfg.Database.BusyTimeoutMs,
		CacheSizeMB:   cfg.Database.CacheSizeMB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}

	client, err := newBackendClient(cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}
	remote := backend.NewSource(client)

	metrics := event.NewMetricsHandler()
	dispatcher := event.NewInMemoryDispatcher(true, log)
	dispatcher.Subscribe(event.NewLoggingHandler(log))
	dispatcher.Subscribe(metrics)

	repoCfg := &repository.Config{
		CoalesceReads: cfg.Repository.CoalesceReads,
		Dispatcher:    dispatcher,
	}

	return &app{
		cfg:        cfg,
		logger:     log,
		store:      store,
		dispatcher: dispatcher,
		metrics:    metrics,
		projects:   repository.NewProjectRepository(repoCfg, store, remote, log.Named("projects")),
		events:     repository.NewEventRepository(repoCfg, store, remote, log.Named("events")),
	}, nil
}

func newBackendClient(cfg *config.Config, log *zap.Logger) (port.BackendClient, error) {
	if cfg.Backend.SeedFile != "" {
		log.Info("using seed file as remote source", zap.String("path", cfg.Backend.SeedFile))
		return backend.NewFileClient(cfg.Backend.SeedFile, log.Named("seed"))
	}

	return backend.NewClient(cfg.Backend.BaseURL, &backend.ClientConfig{
		Timeout:       cfg.Backend.GetTimeout(),
		SkipTLSVerify: cfg.Backend.SkipTLSVerify,
		UserAgent:     cfg.Backend.UserAgent,
	}, log.Named("backend"))
}

// newSyncer builds the syncer over the repositories so every run refreshes
// the cache as well as the local store.
func (a *app) newSyncer() *syncer.Syncer {
	return syncer.New(&syncer.Config{
		Interval:        a.cfg.Sync.GetInterval(),
		TriggerInterval: a.cfg.Sync.GetTriggerInterval(),
		SyncEvents:      a.cfg.Sync.Events,
		Dispatcher:      a.dispatcher,
	}, a.projects, a.events, a.logger.Named("syncer"))
}

// Close waits for background work and releases the store
func (a *app) Close() error {
	a.projects.Close()
	a.events.Close()
	a.dispatcher.Wait()

	_ = logger.Sync()
	return a.store.Close()
}
