package main

import (
	"context"
	"fmt"
	"net"

	"github.com/AakashShahi/workday/internal/config"
	"github.com/AakashShahi/workday/internal/events"
	"github.com/AakashShahi/workday/internal/service"
	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/sweeper"
	"github.com/AakashShahi/workday/pkg/log"
	"github.com/AakashShahi/workday/pkg/migrations"
	"github.com/AakashShahi/workday/pkg/schedule"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "workday-api",
	Short: "Job marketplace api and background sweeps",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sweepCmd)
}

// initLogger replaces the global zap logger and returns the function
// restoring it.
func initLogger(cfg *config.Config) func() {
	logger := log.InitLog(log.Level(cfg.Service.LogLevel))
	undo := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		undo()
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	zap.S().Info("initializing data store")
	db, err := store.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing data store: %w", err)
	}

	s := store.NewStore(db)
	if cfg.Service.MigrationFolder != "" {
		if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	} else if err := s.InitialMigration(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("running initial migration: %w", err)
	}

	if err := s.Seed(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("seeding categories: %w", err)
	}
	return s, nil
}

type services struct {
	jobs     *service.JobService
	reviews  *service.ReviewService
	runner   *sweeper.Runner
	producer *events.EventProducer
}

func newServices(cfg *config.Config, s store.Store) (*services, error) {
	calendar, err := schedule.NewCalendar(cfg.Service.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Service.Timezone, err)
	}

	producer := events.NewEventProducer(&events.StdoutWriter{}, events.WithOutputTopic(cfg.Service.EventsTopic))
	opts := []service.Option{
		service.WithNotifier(events.NewNotificationSink(producer)),
		service.WithAuditor(events.NewAuditSink(producer)),
		service.WithCalendar(calendar),
		service.WithStoreTimeout(cfg.Service.StoreTimeout),
	}

	jobs := service.NewJobService(s, opts...)
	runner := sweeper.NewRunner().
		Schedule(sweeper.NewExpiry(s, jobs, calendar, cfg.Service.StoreTimeout), cfg.Service.Sweep.ExpiryInterval).
		Schedule(sweeper.NewAvailability(s, calendar, cfg.Service.StoreTimeout), cfg.Service.Sweep.AvailabilityInterval)

	return &services{
		jobs:     jobs,
		reviews:  service.NewReviewService(s, opts...),
		runner:   runner,
		producer: producer,
	}, nil
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
