package v1alpha1

import (
	"context"
	"errors"
	"net/http"

	api "github.com/AakashShahi/workday/api/v1alpha1"
	"github.com/AakashShahi/workday/internal/service"
	"github.com/AakashShahi/workday/pkg/requestid"
	"go.uber.org/zap"
)

const reasonUnavailable = "unavailable"

// statusFor maps a service error to the HTTP status and the reason sent
// back to the client.
func statusFor(err error) (int, string) {
	switch err.(type) {
	case *service.ErrValidation:
		return http.StatusBadRequest, service.ReasonValidation
	case *service.ErrResourceNotFound:
		return http.StatusNotFound, service.ReasonNotFound
	case *service.ErrNotAuthorized:
		return http.StatusForbidden, service.ReasonNotAuthorized
	case *service.ErrAlreadyTerminal:
		return http.StatusConflict, service.ReasonAlreadyTerminal
	case *service.ErrInvalidState:
		return http.StatusConflict, service.ReasonInvalidState
	case *service.ErrConflict:
		return http.StatusConflict, service.ReasonConflict
	case *service.ErrTransientStore:
		return http.StatusServiceUnavailable, service.ReasonTransient
	case *service.ErrInvariantViolation:
		return http.StatusInternalServerError, service.ReasonInvariantViolation
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable, reasonUnavailable
	}
	return http.StatusInternalServerError, service.ReasonInternal
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, reason := statusFor(err)

	message := err.Error()
	if reason == service.ReasonInternal {
		zap.S().Named("handlers").Errorw("internal error", "path", r.URL.Path, "request_id", requestid.FromRequest(r), "error", err)
		message = "internal error"
	}

	respond(w, r, status, api.Error{
		Message:   message,
		Reason:    reason,
		RequestId: requestid.FromRequest(r),
	})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	respond(w, r, http.StatusBadRequest, api.Error{
		Message:   message,
		Reason:    service.ReasonValidation,
		RequestId: requestid.FromRequest(r),
	})
}
