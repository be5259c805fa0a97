package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/AakashShahi/workday/internal/api_server"
	"github.com/AakashShahi/workday/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the workday api, the metrics endpoint and the sweeps",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		undo := initLogger(cfg)
		defer undo()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		s, err := openStore(ctx, cfg)
		if err != nil {
			zap.S().Fatalw("opening store", "error", err)
		}
		defer s.Close()

		srvs, err := newServices(cfg, s)
		if err != nil {
			zap.S().Fatalw("building services", "error", err)
		}
		defer srvs.producer.Close()

		apiListener, err := newListener(cfg.Service.Address)
		if err != nil {
			zap.S().Fatalw("creating listener", "error", err)
		}
		metricsListener, err := newListener(cfg.Service.MetricsAddress)
		if err != nil {
			zap.S().Fatalw("creating metrics listener", "error", err)
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return apiserver.New(cfg, s, apiListener, srvs.jobs, srvs.reviews).Run(ctx)
		})
		g.Go(func() error {
			return apiserver.NewMetricServer(cfg.Service.MetricsAddress, metricsListener).Run(ctx)
		})
		g.Go(func() error {
			return srvs.runner.Run(ctx)
		})

		if err := g.Wait(); err != nil {
			zap.S().Errorw("service stopped with error", "error", err)
			return err
		}
		return nil
	},
}
