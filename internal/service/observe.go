package service

import (
	"context"
	"errors"

	"github.com/AakashShahi/workday/pkg/metrics"
	"go.uber.org/zap"
)

// Notifier delivers a message to a user. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string)
}

// Auditor records the outcome of every attempted action. Recording is best
// effort.
type Auditor interface {
	Record(ctx context.Context, actorID, action, status, detail string)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string, string) {}

type noopAuditor struct{}

func (noopAuditor) Record(context.Context, string, string, string, string) {}

// Audit statuses.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// observe counts the outcome of an action and hands it to the auditor.
func observe(ctx context.Context, auditor Auditor, actorID string, action Action, detail string, err error) {
	metrics.IncreaseJobTransitionsMetric(action.String(), result(err))

	var violation *ErrInvariantViolation
	if errors.As(err, &violation) {
		metrics.IncreaseInvariantViolationsMetric()
		zap.S().Named("invariant").Errorw("job breaks lifecycle invariants", "job_id", violation.JobID, "action", action, "error", err)
	}

	if err != nil {
		auditor.Record(ctx, actorID, action.String(), AuditFailure, err.Error())
		return
	}
	auditor.Record(ctx, actorID, action.String(), AuditSuccess, detail)
}

func result(err error) string {
	var (
		conflict   *ErrConflict
		transient  *ErrTransientStore
		violation  *ErrInvariantViolation
		validation *ErrValidation
		notFound   *ErrResourceNotFound
		notAuth    *ErrNotAuthorized
		invalid    *ErrInvalidState
	)
	switch {
	case err == nil:
		return metrics.ResultApplied
	case errors.As(err, &conflict):
		return metrics.ResultConflict
	case errors.As(err, &transient), errors.As(err, &violation):
		return metrics.ResultError
	case errors.As(err, &validation), errors.As(err, &notFound), errors.As(err, &notAuth), errors.As(err, &invalid):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
