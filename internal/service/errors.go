package service

import (
	"fmt"

	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
)

// Stable reasons carried by every rejection.
const (
	ReasonValidation         = "validation_failed"
	ReasonNotFound           = "not_found"
	ReasonNotAuthorized      = "not_authorized"
	ReasonInvalidState       = "invalid_state"
	ReasonAlreadyTerminal    = "already_terminal"
	ReasonConflict           = "conflict"
	ReasonTransient          = "transient"
	ReasonInvariantViolation = "invariant_violation"
	ReasonInternal           = "internal"
)

type ErrValidation struct {
	error
}

func NewErrValidation(format string, args ...any) *ErrValidation {
	return &ErrValidation{fmt.Errorf(format, args...)}
}

func (e *ErrValidation) Reason() string { return ReasonValidation }

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id string, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id.String(), "job")
}

func NewErrCategoryNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id.String(), "category")
}

func NewErrReviewNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id.String(), "review")
}

func NewErrUserNotFound(id string) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "user")
}

func (e *ErrResourceNotFound) Reason() string { return ReasonNotFound }

type ErrNotAuthorized struct {
	error
}

func NewErrNotAuthorized(format string, args ...any) *ErrNotAuthorized {
	return &ErrNotAuthorized{fmt.Errorf(format, args...)}
}

func (e *ErrNotAuthorized) Reason() string { return ReasonNotAuthorized }

// ErrInvalidState means the job is not in a status the action accepts.
type ErrInvalidState struct {
	error
	Status model.JobStatus
}

func NewErrInvalidState(action Action, status model.JobStatus) *ErrInvalidState {
	return &ErrInvalidState{
		error:  fmt.Errorf("cannot %s a job in status %q", action.verb(), status),
		Status: status,
	}
}

func (e *ErrInvalidState) Reason() string { return ReasonInvalidState }

// ErrAlreadyTerminal is the invalid state of a done or failed job. It
// unwraps to *ErrInvalidState.
type ErrAlreadyTerminal struct {
	*ErrInvalidState
}

func NewErrAlreadyTerminal(action Action, status model.JobStatus) *ErrAlreadyTerminal {
	return &ErrAlreadyTerminal{&ErrInvalidState{
		error:  fmt.Errorf("cannot %s: job is already %s", action.verb(), status),
		Status: status,
	}}
}

func (e *ErrAlreadyTerminal) Reason() string { return ReasonAlreadyTerminal }

func (e *ErrAlreadyTerminal) Unwrap() error { return e.ErrInvalidState }

// ErrConflict means another writer moved the job first.
type ErrConflict struct {
	error
}

func NewErrConflict(format string, args ...any) *ErrConflict {
	return &ErrConflict{fmt.Errorf(format, args...)}
}

func NewErrJobNotAvailable(id uuid.UUID) *ErrConflict {
	return NewErrConflict("job %s is not available", id)
}

func (e *ErrConflict) Reason() string { return ReasonConflict }

// ErrTransientStore means the outcome of a store call is unknown. Nothing
// was applied, the whole operation can be retried.
type ErrTransientStore struct {
	error
}

func NewErrTransientStore(err error) *ErrTransientStore {
	return &ErrTransientStore{fmt.Errorf("store unavailable: %w", err)}
}

func (e *ErrTransientStore) Reason() string { return ReasonTransient }

func (e *ErrTransientStore) Unwrap() error { return e.error }

type ErrInvariantViolation struct {
	error
	JobID uuid.UUID
}

func NewErrInvariantViolation(jobID uuid.UUID, format string, args ...any) *ErrInvariantViolation {
	return &ErrInvariantViolation{
		error: fmt.Errorf("job %s: %s", jobID, fmt.Sprintf(format, args...)),
		JobID: jobID,
	}
}

func (e *ErrInvariantViolation) Reason() string { return ReasonInvariantViolation }

// Reason returns the machine readable reason of err.
func Reason(err error) string {
	if r, ok := err.(interface{ Reason() string }); ok {
		return r.Reason()
	}
	return ReasonInternal
}
