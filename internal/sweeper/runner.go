package sweeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task is one periodic sweep.
type Task interface {
	Name() string
	Run(ctx context.Context, now time.Time) error
}

type entry struct {
	task     Task
	interval time.Duration
}

// Runner drives every task on its own jittered ticker. A task never overlaps
// with itself.
type Runner struct {
	entries []entry
	now     func() time.Time
	log     *zap.SugaredLogger
}

func NewRunner() *Runner {
	return &Runner{
		now: time.Now,
		log: zap.S().Named("sweeper"),
	}
}

func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

func (r *Runner) Schedule(task Task, interval time.Duration) *Runner {
	r.entries = append(r.entries, entry{task: task, interval: interval})
	return r
}

// Run blocks until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	for _, e := range r.entries {
		if e.interval <= 0 {
			return fmt.Errorf("sweep %s: interval must be positive, got %s", e.task.Name(), e.interval)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, e := range r.entries {
		e := e
		g.Go(func() error {
			r.log.Infow("sweep started", "sweep", e.task.Name(), "interval", e.interval)
			ticker := jitterbug.New(e.interval, &jitterbug.Norm{Stdev: e.interval / 20, Mean: 0})
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					r.log.Infow("sweep stopped", "sweep", e.task.Name())
					return nil
				case <-ticker.C:
				}
				_ = r.tick(ctx, e.task)
			}
		})
	}

	return g.Wait()
}

// RunOnce runs every task a single time, one after the other.
func (r *Runner) RunOnce(ctx context.Context) error {
	var errs []error
	for _, e := range r.entries {
		if err := r.tick(ctx, e.task); err != nil {
			errs = append(errs, fmt.Errorf("sweep %s: %w", e.task.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) tick(ctx context.Context, task Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
			r.log.Errorw("sweep panicked", "sweep", task.Name(), "panic", rec)
		}
	}()

	started := time.Now()
	if err = task.Run(ctx, r.now()); err != nil {
		r.log.Errorw("sweep failed", "sweep", task.Name(), "error", err)
		return err
	}
	r.log.Debugw("sweep tick", "sweep", task.Name(), "duration", time.Since(started))
	return nil
}
