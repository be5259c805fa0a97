package sweeper

import (
	"context"
	"time"

	"github.com/AakashShahi/workday/internal/service"
	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/AakashShahi/workday/pkg/metrics"
	"github.com/AakashShahi/workday/pkg/schedule"
	"go.uber.org/zap"
)

const ExpirySweep = "expiry"

// Expiry fails every active job whose scheduled moment has passed.
type Expiry struct {
	store    store.Store
	jobs     *service.JobService
	calendar *schedule.Calendar
	timeout  time.Duration
	log      *zap.SugaredLogger
}

// ExpiryResult counts what a tick did. Lost jobs moved between the read and
// the write; Failed jobs could not be written and are retried next tick.
type ExpiryResult struct {
	Scanned int
	Expired int
	Lost    int
	Failed  int
	Invalid int
}

func NewExpiry(s store.Store, jobs *service.JobService, calendar *schedule.Calendar, timeout time.Duration) *Expiry {
	return &Expiry{
		store:    s,
		jobs:     jobs,
		calendar: calendar,
		timeout:  timeout,
		log:      zap.S().Named("expiry_sweep"),
	}
}

func (e *Expiry) Name() string {
	return ExpirySweep
}

func (e *Expiry) Run(ctx context.Context, now time.Time) error {
	_, err := e.Tick(ctx, now)
	return err
}

// Tick expires the jobs scheduled strictly before now. Each write is guarded
// on the status read, so a job that moved meanwhile is skipped. Running it
// again with the same now changes nothing.
func (e *Expiry) Tick(ctx context.Context, now time.Time) (ExpiryResult, error) {
	result := ExpiryResult{}
	metrics.IncreaseSweepRunsMetric(ExpirySweep)

	jobs, err := e.activeJobs(ctx)
	if err != nil {
		return result, err
	}
	result.Scanned = len(jobs)

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		scheduledAt, err := e.calendar.Parse(job.Date, job.Time)
		if err != nil {
			violation := service.NewErrInvariantViolation(job.ID, "unparsable schedule %q %q: %v", job.Date, job.Time, err)
			metrics.IncreaseInvariantViolationsMetric()
			zap.S().Named("invariant").Errorw("skipping job", "job_id", job.ID, "error", violation)
			result.Invalid++
			continue
		}
		if !scheduledAt.Before(now) {
			continue
		}

		if _, err := e.jobs.ExpireJob(ctx, job, scheduledAt, now); err != nil {
			switch reason := service.Reason(err); reason {
			case service.ReasonConflict, service.ReasonNotFound, service.ReasonInvalidState, service.ReasonAlreadyTerminal:
				e.log.Infow("job moved before expiry", "job_id", job.ID, "status", job.Status, "reason", reason, "error", err)
				result.Lost++
			case service.ReasonTransient:
				e.log.Warnw("failed to expire job", "job_id", job.ID, "status", job.Status, "error", err)
				result.Failed++
			default:
				e.log.Errorw("failed to expire job", "job_id", job.ID, "status", job.Status, "reason", reason, "error", err)
				result.Failed++
			}
			continue
		}
		result.Expired++
	}

	metrics.AddExpiredJobsMetric(result.Expired)
	e.log.Debugw("sweep done", "scanned", result.Scanned, "expired", result.Expired, "lost", result.Lost, "failed", result.Failed, "invalid", result.Invalid)
	return result, nil
}

func (e *Expiry) activeJobs(ctx context.Context) (model.JobList, error) {
	ctx, cancel := withTimeout(ctx, e.timeout)
	defer cancel()

	return e.store.Job().List(ctx,
		store.NewJobQueryFilter().ByStatus(model.ActiveJobStatuses...),
		store.NewJobQueryOptions().WithSortOrder(store.SortByID),
	)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
