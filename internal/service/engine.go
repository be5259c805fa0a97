package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/jackc/pgx/v5/pgconn"
)

// Engine applies a decided transition as one conditional write.
type Engine struct {
	store store.Store
}

func NewEngine(s store.Store) *Engine {
	return &Engine{store: s}
}

// Apply writes t guarded by the state it was decided on. When the guard no
// longer holds the job is read again: a missing job is NotFound, any other
// state is a Conflict.
func (e *Engine) Apply(ctx context.Context, t Transition) (*model.Job, error) {
	var (
		job *model.Job
		err error
	)
	if t.Delete {
		err = e.store.Job().ConditionalDelete(ctx, t.JobID, t.Condition())
	} else {
		job, err = e.store.Job().ConditionalUpdate(ctx, t.JobID, t.Condition(), t.Update())
	}

	switch {
	case err == nil:
		return job, nil
	case errors.Is(err, store.ErrNoMatch):
		return nil, e.lost(ctx, t)
	default:
		return nil, storeError(err)
	}
}

func (e *Engine) lost(ctx context.Context, t Transition) error {
	current, err := e.store.Job().Get(ctx, t.JobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrJobNotFound(t.JobID)
		}
		return storeError(err)
	}
	if t.Action == ActionAcceptPublicJob {
		return NewErrJobNotAvailable(t.JobID)
	}
	if current.Status == t.From {
		return NewErrConflict("job %s changed hands before %s", t.JobID, t.Action.verb())
	}
	return NewErrConflict("job %s moved from %s to %s before %s", t.JobID, t.From, current.Status, t.Action.verb())
}

// storeError classifies a store failure. Failures with an unknown outcome
// become *ErrTransientStore, everything else is returned as is.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		return NewErrTransientStore(err)
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}
