package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eeese/showcase/internal/service/server"
)

const shutdownTimeout = 30 * time.Second

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP API and the background syncer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}
			defer a.Close()
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	a.logger.Info("starting showcase",
		zap.String("version", Version),
		zap.String("database", a.cfg.Database.Path))

	deps := &server.Deps{
		Store:    a.store,
		Projects: a.projects,
		Events:   a.events,
		Metrics:  a.metrics,
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.cfg.Sync.Enabled {
		s := a.newSyncer()
		deps.Syncer = s
		g.Go(func() error {
			if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		a.logger.Info("background sync disabled")
	}

	httpServer := server.New(&server.Config{
		BindAddr:             a.cfg.HTTP.BindAddr,
		EnableAdminAPI:       a.cfg.HTTP.EnableAdminAPI,
		AdminUsername:        a.cfg.HTTP.AdminUsername,
		AdminPassword:        a.cfg.HTTP.AdminPassword,
		ReadTimeout:          a.cfg.HTTP.GetReadTimeout(),
		WriteTimeout:         a.cfg.HTTP.GetWriteTimeout(),
		IdleTimeout:          a.cfg.HTTP.GetIdleTimeout(),
		ForceRefreshInterval: a.cfg.HTTP.GetForceRefreshInterval(),
	}, deps, a.logger.Named("http"))

	g.Go(httpServer.Start)

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutdown signal received, stopping services")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := httpServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("failed to stop HTTP server gracefully", zap.Error(err))
		}
		return nil
	})

	err := g.Wait()
	a.logger.Info("showcase stopped")
	return err
}
