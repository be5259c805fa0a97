package sweeper

import (
	"context"
	"time"

	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/pkg/metrics"
	"github.com/AakashShahi/workday/pkg/schedule"
	"go.uber.org/zap"
)

const AvailabilitySweep = "availability"

// Availability recomputes the available flag of every provider from the
// jobs in progress today.
type Availability struct {
	store    store.Store
	calendar *schedule.Calendar
	timeout  time.Duration
	log      *zap.SugaredLogger
}

type AvailabilityResult struct {
	Today   string
	Busy    []string
	Changed int64
}

func NewAvailability(s store.Store, calendar *schedule.Calendar, timeout time.Duration) *Availability {
	return &Availability{
		store:    s,
		calendar: calendar,
		timeout:  timeout,
		log:      zap.S().Named("availability_sweep"),
	}
}

func (a *Availability) Name() string {
	return AvailabilitySweep
}

func (a *Availability) Run(ctx context.Context, now time.Time) error {
	_, err := a.Tick(ctx, now)
	return err
}

func (a *Availability) Tick(ctx context.Context, now time.Time) (AvailabilityResult, error) {
	result := AvailabilityResult{Today: a.calendar.Today(now)}
	metrics.IncreaseSweepRunsMetric(AvailabilitySweep)

	busy, err := a.busyProviders(ctx, result.Today)
	if err != nil {
		return result, err
	}
	result.Busy = busy

	tctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()
	changed, err := a.store.User().ReconcileAvailability(tctx, busy)
	if err != nil {
		return result, err
	}
	result.Changed = changed

	metrics.UpdateBusyProvidersMetric(len(busy))
	a.log.Debugw("sweep done", "today", result.Today, "busy", len(busy), "changed", changed)
	return result, nil
}

func (a *Availability) busyProviders(ctx context.Context, today string) ([]string, error) {
	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()
	return a.store.Job().BusyProviders(ctx, today)
}
