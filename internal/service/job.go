package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/service/mappers"
	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/AakashShahi/workday/pkg/log"
	"github.com/google/uuid"
)

type JobService struct {
	collaborators
	store  store.Store
	engine *Engine
	logger *log.StructuredLogger
}

func NewJobService(s store.Store, opts ...Option) *JobService {
	return &JobService{
		collaborators: newCollaborators(s.Category(), opts...),
		store:         s,
		engine:        NewEngine(s),
		logger:        log.NewDebugLogger("job_service"),
	}
}

func (s *JobService) CreateJob(ctx context.Context, actor auth.User, form mappers.JobCreateForm) (*model.Job, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("create_job").
		WithString("actor", actor.ID).
		WithUUID("category_id", form.CategoryID).
		Build()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job, err := s.createJob(ctx, actor, form)
	detail := ""
	if job != nil {
		detail = fmt.Sprintf("job %s posted for %s %s", job.ID, job.Date, job.Time)
	}
	observe(ctx, s.auditor, actor.ID, ActionCreateJob, detail, err)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().WithUUID("job_id", job.ID).Log()
	return job, nil
}

func (s *JobService) createJob(ctx context.Context, actor auth.User, form mappers.JobCreateForm) (*model.Job, error) {
	if !actor.IsRequester() {
		return nil, NewErrNotAuthorized("only requesters can post a job")
	}
	if strings.TrimSpace(form.Title) == "" {
		return nil, NewErrValidation("title is required")
	}
	if form.Price < 0 {
		return nil, NewErrValidation("price must not be negative")
	}
	if form.CategoryID == uuid.Nil {
		return nil, NewErrValidation("category is required")
	}

	date, clock, at, err := s.calendar.Normalize(form.Date, form.Time)
	if err != nil {
		return nil, NewErrValidation("invalid schedule: %v", err)
	}
	if !at.After(s.now()) {
		return nil, NewErrValidation("job must be scheduled in the future, got %s %s", date, clock)
	}

	icon, err := s.catalog.Icon(ctx, form.CategoryID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCategoryNotFound(form.CategoryID)
		}
		return nil, storeError(err)
	}

	job, err := s.store.Job().Create(ctx, form.ToJob(uuid.New(), actor.ID, icon, date, clock, at))
	if err != nil {
		return nil, storeError(err)
	}
	return job, nil
}

// GetJob returns a job its parties can see. Open jobs are visible to anyone.
func (s *JobService) GetJob(ctx context.Context, actor auth.User, id uuid.UUID) (*model.Job, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusOpen && !job.IsParty(actor.ID) {
		return nil, NewErrNotAuthorized("user %s is not a party of job %s", actor.ID, id)
	}
	return job, nil
}

// ListJobs returns the jobs a requester posted or a provider holds, minus the
// ones the actor hid.
func (s *JobService) ListJobs(ctx context.Context, actor auth.User, filter mappers.JobFilter) (model.JobList, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("list_jobs").
		WithString("actor", actor.ID).
		WithParam("statuses", filter.Statuses).
		Build()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	storeFilter := store.NewJobQueryFilter().VisibleTo(actor.Role)
	switch actor.Role {
	case model.RoleRequester:
		storeFilter = storeFilter.ByPostedBy(actor.ID)
	case model.RoleProvider:
		storeFilter = storeFilter.ByAssignedTo(actor.ID)
	default:
		return nil, NewErrNotAuthorized("role %q cannot list jobs", actor.Role)
	}
	if len(filter.Statuses) > 0 {
		storeFilter = storeFilter.ByStatus(filter.Statuses...)
	}

	jobs, err := s.store.Job().List(ctx, storeFilter, store.NewJobQueryOptions().WithSortOrder(store.SortByCreatedTime))
	if err != nil {
		err = storeError(err)
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().WithInt("count", len(jobs)).Log()
	return jobs, nil
}

// ListOpenJobs returns the jobs providers can request, soonest first.
func (s *JobService) ListOpenJobs(ctx context.Context) (model.JobList, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	jobs, err := s.store.Job().List(ctx,
		store.NewJobQueryFilter().ByStatus(model.JobStatusOpen),
		store.NewJobQueryOptions().WithSortOrder(store.SortByScheduledTime),
	)
	if err != nil {
		return nil, storeError(err)
	}
	return jobs, nil
}

func (s *JobService) AssignJob(ctx context.Context, actor auth.User, id uuid.UUID, providerID string) (*model.Job, error) {
	if err := s.checkProvider(ctx, providerID); err != nil {
		return nil, err
	}

	_, job, err := s.transition(ctx, actor, id, ActionAssignJob, Params{ProviderID: providerID})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, providerID, "New job assigned", fmt.Sprintf("You were assigned %q on %s at %s.", job.Title, job.Date, job.Time))
	return job, nil
}

func (s *JobService) AcceptPublicJob(ctx context.Context, actor auth.User, id uuid.UUID) (*model.Job, error) {
	_, job, err := s.transition(ctx, actor, id, ActionAcceptPublicJob, Params{})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, job.PostedBy, "New job request", fmt.Sprintf("Provider %s wants to take %q.", actor.ID, job.Title))
	return job, nil
}

func (s *JobService) AcceptWorker(ctx context.Context, actor auth.User, id uuid.UUID, providerID string) (*model.Job, error) {
	_, job, err := s.transition(ctx, actor, id, ActionAcceptWorker, Params{ProviderID: providerID})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, providerID, "Request accepted", fmt.Sprintf("Your request for %q was accepted.", job.Title))
	return job, nil
}

func (s *JobService) RejectWorker(ctx context.Context, actor auth.User, id uuid.UUID) (*model.Job, error) {
	before, job, err := s.transition(ctx, actor, id, ActionRejectWorker, Params{})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, before.AssignedTo, "Request declined", fmt.Sprintf("Your request for %q was declined.", job.Title))
	return job, nil
}

func (s *JobService) WithdrawRequest(ctx context.Context, actor auth.User, id uuid.UUID) (*model.Job, error) {
	_, job, err := s.transition(ctx, actor, id, ActionWithdrawRequest, Params{})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, job.PostedBy, "Request withdrawn", fmt.Sprintf("Provider %s withdrew from %q.", actor.ID, job.Title))
	return job, nil
}

func (s *JobService) AcceptAssignedJob(ctx context.Context, actor auth.User, id uuid.UUID) (*model.Job, error) {
	_, job, err := s.transition(ctx, actor, id, ActionAcceptAssignedJob, Params{})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, job.PostedBy, "Job accepted", fmt.Sprintf("Provider %s accepted %q.", actor.ID, job.Title))
	return job, nil
}

func (s *JobService) DeclineAssignedJob(ctx context.Context, actor auth.User, id uuid.UUID) (*model.Job, error) {
	_, job, err := s.transition(ctx, actor, id, ActionDeclineAssignedJob, Params{})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, job.PostedBy, "Job declined", fmt.Sprintf("Provider %s declined %q.", actor.ID, job.Title))
	return job, nil
}

func (s *JobService) UnassignJob(ctx context.Context, actor auth.User, id uuid.UUID) (*model.Job, error) {
	before, job, err := s.transition(ctx, actor, id, ActionUnassignJob, Params{})
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, before.AssignedTo, "Job unassigned", fmt.Sprintf("You are no longer assigned to %q.", job.Title))
	return job, nil
}

// DeleteJob removes an open job for good.
func (s *JobService) DeleteJob(ctx context.Context, actor auth.User, id uuid.UUID) error {
	_, _, err := s.transition(ctx, actor, id, ActionDeleteJob, Params{})
	return err
}

// checkProvider rejects an id the users projection knows under another
// role. Unknown ids pass.
func (s *JobService) checkProvider(ctx context.Context, providerID string) error {
	if providerID == "" {
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	provider, err := s.store.User().Get(ctx, providerID)
	switch {
	case err == nil && provider.Role != model.RoleProvider:
		return NewErrValidation("user %s is not a provider", providerID)
	case err != nil && !errors.Is(err, store.ErrRecordNotFound):
		return storeError(err)
	}
	return nil
}

// HideFailedJob drops a failed job from the actor's own listing.
func (s *JobService) HideFailedJob(ctx context.Context, actor auth.User, id uuid.UUID) (*model.Job, error) {
	_, job, err := s.transition(ctx, actor, id, ActionHideFailedJob, Params{})
	return job, err
}

// ExpireJob fails job if its scheduled moment is before now. job is the
// record as the caller read it; the write is guarded on its status and
// assignee.
func (s *JobService) ExpireJob(ctx context.Context, job model.Job, scheduledAt, now time.Time) (*model.Job, error) {
	tracer := s.logger.WithContext(ctx).
		Operation(ActionExpireJob.String()).
		WithUUID("job_id", job.ID).
		WithString("from", job.Status.String()).
		Build()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	actor := auth.SystemUser
	var updated *model.Job
	t, err := Decide(job, actor, ActionExpireJob, Params{Now: now, ScheduledAt: scheduledAt})
	if err == nil {
		updated, err = s.engine.Apply(ctx, t)
	}
	observe(ctx, s.auditor, actor.ID, ActionExpireJob, fmt.Sprintf("job %s: %s -> %s", job.ID, job.Status, model.JobStatusFailed), err)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().Log()
	body := fmt.Sprintf("%q scheduled on %s at %s expired before completion.", job.Title, job.Date, job.Time)
	s.notifier.Notify(ctx, updated.PostedBy, "Job expired", body)
	s.notifier.Notify(ctx, updated.AssignedTo, "Job expired", body)
	return updated, nil
}

// transition reads the job, decides the action against it and applies the
// outcome. It returns the job as read and as written.
func (s *JobService) transition(ctx context.Context, actor auth.User, id uuid.UUID, action Action, p Params) (*model.Job, *model.Job, error) {
	tracer := s.logger.WithContext(ctx).
		Operation(action.String()).
		WithString("actor", actor.ID).
		WithUUID("job_id", id).
		Build()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		before, after *model.Job
		t             Transition
	)
	before, err := s.load(ctx, id)
	if err == nil {
		t, err = Decide(*before, actor, action, p)
	}
	if err == nil {
		after, err = s.engine.Apply(ctx, t)
	}

	detail := ""
	if err == nil {
		detail = fmt.Sprintf("job %s: %s -> %s", id, t.From, t.To)
	}
	observe(ctx, s.auditor, actor.ID, action, detail, err)
	if err != nil {
		tracer.Error(err).Log()
		return nil, nil, err
	}

	tracer.Success().WithString("status", t.To.String()).Log()
	return before, after, nil
}

func (s *JobService) load(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, storeError(err)
	}
	return job, nil
}
