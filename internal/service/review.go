package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/service/mappers"
	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/AakashShahi/workday/pkg/log"
	"github.com/google/uuid"
)

type ReviewService struct {
	collaborators
	store  store.Store
	engine *Engine
	logger *log.StructuredLogger
}

func NewReviewService(s store.Store, opts ...Option) *ReviewService {
	return &ReviewService{
		collaborators: newCollaborators(s.Category(), opts...),
		store:         s,
		engine:        NewEngine(s),
		logger:        log.NewDebugLogger("review_service"),
	}
}

// CompleteJob moves an in-progress job to done and stores its review. Both
// writes share one transaction and the job is claimed first, so a review
// never exists without its done job and a job gets at most one review.
func (s *ReviewService) CompleteJob(ctx context.Context, actor auth.User, jobID uuid.UUID, form mappers.ReviewForm) (*model.Job, *model.Review, error) {
	tracer := s.logger.WithContext(ctx).
		Operation(ActionCompleteJob.String()).
		WithString("actor", actor.ID).
		WithUUID("job_id", jobID).
		WithInt("rating", form.Rating).
		Build()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	job, review, err := s.complete(ctx, actor, jobID, form)
	detail := ""
	if err == nil {
		detail = fmt.Sprintf("job %s: %s -> %s, review %s", jobID, model.JobStatusInProgress, model.JobStatusDone, review.ID)
	}
	observe(ctx, s.auditor, actor.ID, ActionCompleteJob, detail, err)
	if err != nil {
		tracer.Error(err).Log()
		return nil, nil, err
	}

	tracer.Success().WithUUID("review_id", review.ID).Log()
	s.notifier.Notify(ctx, job.AssignedTo, "Job completed", fmt.Sprintf("%q was marked done and rated %d.", job.Title, review.Rating))
	return job, review, nil
}

func (s *ReviewService) complete(ctx context.Context, actor auth.User, jobID uuid.UUID, form mappers.ReviewForm) (*model.Job, *model.Review, error) {
	current, err := s.store.Job().Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, nil, NewErrJobNotFound(jobID)
		}
		return nil, nil, storeError(err)
	}

	reviewID := uuid.New()
	t, err := Decide(*current, actor, ActionCompleteJob, Params{ReviewID: reviewID})
	if err != nil {
		return nil, nil, err
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, nil, storeError(err)
	}

	job, err := s.engine.Apply(ctx, t)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, nil, err
	}

	review, err := s.store.Review().Create(ctx, form.ToReview(reviewID, *job))
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, nil, NewErrConflict("job %s already has a review", jobID)
		}
		return nil, nil, storeError(err)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, nil, storeError(err)
	}

	return job, review, nil
}

// ListProviderReviews returns the reviews a provider received that neither
// party hid.
func (s *ReviewService) ListProviderReviews(ctx context.Context, providerID string) (model.ReviewList, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	reviews, err := s.store.Review().List(ctx, store.NewReviewQueryFilter().ByProvider(providerID).Public())
	if err != nil {
		return nil, storeError(err)
	}
	return reviews, nil
}

// HideReview sets the actor's own visibility flag on a review it is party to.
func (s *ReviewService) HideReview(ctx context.Context, actor auth.User, reviewID uuid.UUID) (*model.Review, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("hide_review").
		WithString("actor", actor.ID).
		WithUUID("review_id", reviewID).
		Build()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	review, err := s.store.Review().Get(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrReviewNotFound(reviewID)
		}
		return nil, storeError(err)
	}

	hidden := true
	var byRequester, byProvider *bool
	switch {
	case actor.IsRequester() && review.RequesterID == actor.ID:
		byRequester = &hidden
	case actor.IsProvider() && review.ProviderID == actor.ID:
		byProvider = &hidden
	default:
		return nil, NewErrNotAuthorized("user %s is not a party of review %s", actor.ID, reviewID)
	}

	review, err = s.store.Review().UpdateVisibility(ctx, reviewID, byRequester, byProvider)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrReviewNotFound(reviewID)
		}
		err = storeError(err)
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().Log()
	return review, nil
}
