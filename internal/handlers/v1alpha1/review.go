package v1alpha1

import (
	"context"
	"net/http"

	api "github.com/AakashShahi/workday/api/v1alpha1"
	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/handlers/v1alpha1/mappers"
	"github.com/AakashShahi/workday/internal/handlers/validator"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// (POST /api/v1/jobs/{id}/review)
func (h *ServiceHandler) CompleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body api.ReviewCreate
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		badRequest(w, r, "invalid body: "+err.Error())
		return
	}
	if err := validator.NewValidator().Struct(body); err != nil {
		badRequest(w, r, validator.Message(err))
		return
	}

	user := auth.MustHaveUser(r.Context())
	form := mappers.ReviewFormApi(body)

	completed, err := withRetry(r.Context(), func(ctx context.Context) (api.CompletedJob, error) {
		job, review, err := h.reviewSrv.CompleteJob(ctx, user, id, form)
		if err != nil {
			return api.CompletedJob{}, err
		}
		return api.CompletedJob{Job: mappers.JobToApi(*job), Review: mappers.ReviewToApi(*review)}, nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, completed)
}

// (GET /api/v1/providers/{id}/reviews)
func (h *ServiceHandler) ListProviderReviews(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "id")

	reviews, err := withRetry(r.Context(), func(ctx context.Context) (model.ReviewList, error) {
		return h.reviewSrv.ListProviderReviews(ctx, providerID)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, mappers.ReviewListToApi(reviews))
}

// (POST /api/v1/reviews/{id}/hide)
func (h *ServiceHandler) HideReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user := auth.MustHaveUser(r.Context())
	review, err := withRetry(r.Context(), func(ctx context.Context) (*model.Review, error) {
		return h.reviewSrv.HideReview(ctx, user, id)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, mappers.ReviewToApi(*review))
}
