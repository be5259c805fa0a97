package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AakashShahi/workday/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sweepOnce bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the expiry and availability sweeps without the api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		undo := initLogger(cfg)
		defer undo()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		srvs, err := newServices(cfg, s)
		if err != nil {
			return err
		}
		defer srvs.producer.Close()

		if sweepOnce {
			return srvs.runner.RunOnce(ctx)
		}
		return srvs.runner.Run(ctx)
	},
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepOnce, "once", false, "Run every sweep a single time and exit")
}
