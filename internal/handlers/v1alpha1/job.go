package v1alpha1

import (
	"context"
	"net/http"

	api "github.com/AakashShahi/workday/api/v1alpha1"
	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/handlers/v1alpha1/mappers"
	"github.com/AakashShahi/workday/internal/handlers/validator"
	srvMappers "github.com/AakashShahi/workday/internal/service/mappers"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// (POST /api/v1/jobs)
func (h *ServiceHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var body api.JobCreate
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		badRequest(w, r, "invalid body: "+err.Error())
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewJobValidationRules()...)
	if err := v.Struct(body); err != nil {
		badRequest(w, r, validator.Message(err))
		return
	}

	user := auth.MustHaveUser(r.Context())
	form := mappers.JobFormApi(body)

	job, err := withRetry(r.Context(), func(ctx context.Context) (*model.Job, error) {
		return h.jobSrv.CreateJob(ctx, user, form)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, mappers.JobToApi(*job))
}

// (GET /api/v1/jobs)
func (h *ServiceHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	statuses, err := validator.JobStatuses(r.URL.Query()["status"])
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	user := auth.MustHaveUser(r.Context())
	jobs, err := withRetry(r.Context(), func(ctx context.Context) (model.JobList, error) {
		return h.jobSrv.ListJobs(ctx, user, srvMappers.JobFilter{Statuses: statuses})
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, mappers.JobListToApi(jobs))
}

// (GET /api/v1/jobs/open)
func (h *ServiceHandler) ListOpenJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := withRetry(r.Context(), h.jobSrv.ListOpenJobs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, mappers.JobListToApi(jobs))
}

// (GET /api/v1/jobs/{id})
func (h *ServiceHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	h.jobAction(w, r, http.StatusOK, h.jobSrv.GetJob)
}

// (DELETE /api/v1/jobs/{id})
func (h *ServiceHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user := auth.MustHaveUser(r.Context())
	_, err := withRetry(r.Context(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.jobSrv.DeleteJob(ctx, user, id)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// (POST /api/v1/jobs/{id}/assign)
func (h *ServiceHandler) AssignJob(w http.ResponseWriter, r *http.Request) {
	h.providerAction(w, r, h.jobSrv.AssignJob)
}

// (POST /api/v1/jobs/{id}/accept)
func (h *ServiceHandler) AcceptPublicJob(w http.ResponseWriter, r *http.Request) {
	h.jobAction(w, r, http.StatusOK, h.jobSrv.AcceptPublicJob)
}

// (POST /api/v1/jobs/{id}/withdraw)
func (h *ServiceHandler) WithdrawRequest(w http.ResponseWriter, r *http.Request) {
	h.jobAction(w, r, http.StatusOK, h.jobSrv.WithdrawRequest)
}

// (POST /api/v1/jobs/{id}/accept-worker)
func (h *ServiceHandler) AcceptWorker(w http.ResponseWriter, r *http.Request) {
	h.providerAction(w, r, h.jobSrv.AcceptWorker)
}

// (POST /api/v1/jobs/{id}/reject-worker)
func (h *ServiceHandler) RejectWorker(w http.ResponseWriter, r *http.Request) {
	h.jobAction(w, r, http.StatusOK, h.jobSrv.RejectWorker)
}

// (POST /api/v1/jobs/{id}/start)
func (h *ServiceHandler) AcceptAssignedJob(w http.ResponseWriter, r *http.Request) {
	h.jobAction(w, r, http.StatusOK, h.jobSrv.AcceptAssignedJob)
}

// (POST /api/v1/jobs/{id}/decline)
func (h *ServiceHandler) DeclineAssignedJob(w http.ResponseWriter, r *http.Request) {
	h.jobAction(w, r, http.StatusOK, h.jobSrv.DeclineAssignedJob)
}

// (POST /api/v1/jobs/{id}/unassign)
func (h *ServiceHandler) UnassignJob(w http.ResponseWriter, r *http.Request) {
	h.jobAction(w, r, http.StatusOK, h.jobSrv.UnassignJob)
}

// (POST /api/v1/jobs/{id}/hide)
func (h *ServiceHandler) HideFailedJob(w http.ResponseWriter, r *http.Request) {
	h.jobAction(w, r, http.StatusOK, h.jobSrv.HideFailedJob)
}

type jobActionFn func(ctx context.Context, actor auth.User, id uuid.UUID) (*model.Job, error)

type providerActionFn func(ctx context.Context, actor auth.User, id uuid.UUID, providerID string) (*model.Job, error)

func (h *ServiceHandler) jobAction(w http.ResponseWriter, r *http.Request, status int, fn jobActionFn) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user := auth.MustHaveUser(r.Context())
	job, err := withRetry(r.Context(), func(ctx context.Context) (*model.Job, error) {
		return fn(ctx, user, id)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, status, mappers.JobToApi(*job))
}

func (h *ServiceHandler) providerAction(w http.ResponseWriter, r *http.Request, fn providerActionFn) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body api.ProviderChoice
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		badRequest(w, r, "invalid body: "+err.Error())
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewProviderChoiceValidationRules()...)
	if err := v.Struct(body); err != nil {
		badRequest(w, r, validator.Message(err))
		return
	}

	user := auth.MustHaveUser(r.Context())
	job, err := withRetry(r.Context(), func(ctx context.Context) (*model.Job, error) {
		return fn(ctx, user, id, body.ProviderId)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, mappers.JobToApi(*job))
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(w, r, "invalid id "+raw)
		return uuid.Nil, false
	}
	return id, true
}
