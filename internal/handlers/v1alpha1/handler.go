package v1alpha1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AakashShahi/workday/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sethvargo/go-retry"
)

const retryBase = 50 * time.Millisecond

type ServiceHandler struct {
	jobSrv    *service.JobService
	reviewSrv *service.ReviewService
}

func NewServiceHandler(jobService *service.JobService, reviewService *service.ReviewService) *ServiceHandler {
	return &ServiceHandler{
		jobSrv:    jobService,
		reviewSrv: reviewService,
	}
}

// Routes mounts the authenticated API. Every route expects a user in the
// request context.
func (h *ServiceHandler) Routes(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Post("/", h.CreateJob)
		r.Get("/", h.ListJobs)
		r.Get("/open", h.ListOpenJobs)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetJob)
			r.Delete("/", h.DeleteJob)
			r.Post("/assign", h.AssignJob)
			r.Post("/accept", h.AcceptPublicJob)
			r.Post("/withdraw", h.WithdrawRequest)
			r.Post("/accept-worker", h.AcceptWorker)
			r.Post("/reject-worker", h.RejectWorker)
			r.Post("/start", h.AcceptAssignedJob)
			r.Post("/decline", h.DeclineAssignedJob)
			r.Post("/unassign", h.UnassignJob)
			r.Post("/review", h.CompleteJob)
			r.Post("/hide", h.HideFailedJob)
		})
	})

	r.Get("/providers/{id}/reviews", h.ListProviderReviews)
	r.Post("/reviews/{id}/hide", h.HideReview)
}

// withRetry runs fn up to three times while the store reports a transient
// failure.
func withRetry[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	backoff := retry.WithMaxRetries(2, retry.NewExponential(retryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)

		var transient *service.ErrTransientStore
		if errors.As(err, &transient) {
			return retry.RetryableError(err)
		}
		return err
	})
	return result, err
}

func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	render.Status(r, status)
	render.JSON(w, r, body)
}
