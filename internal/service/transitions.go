package service

import (
	"strings"
	"time"

	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
)

type Action string

const (
	ActionCreateJob          Action = "create_job"
	ActionAssignJob          Action = "assign_job"
	ActionAcceptPublicJob    Action = "accept_public_job"
	ActionAcceptWorker       Action = "accept_worker"
	ActionRejectWorker       Action = "reject_worker"
	ActionWithdrawRequest    Action = "withdraw_request"
	ActionAcceptAssignedJob  Action = "accept_assigned_job"
	ActionDeclineAssignedJob Action = "decline_assigned_job"
	ActionUnassignJob        Action = "unassign_job"
	ActionCompleteJob        Action = "complete_job"
	ActionExpireJob          Action = "expire_job"
	ActionDeleteJob          Action = "delete_job"
	ActionHideFailedJob      Action = "hide_failed_job"
)

func (a Action) String() string {
	return string(a)
}

// verb renders the action for error messages: "accept_worker" -> "accept worker".
func (a Action) verb() string {
	return strings.ReplaceAll(string(a), "_", " ")
}

// Params carries the role specific inputs of an action.
type Params struct {
	// ProviderID is the provider chosen by the requester (assign, accept worker).
	ProviderID string
	// ReviewID is the id of the review about to be created (complete).
	ReviewID uuid.UUID
	// Now and ScheduledAt are compared by the expiry (expire).
	Now         time.Time
	ScheduledAt time.Time
}

// Transition is the outcome of a successful decision: the state the job must
// still be in and the mutation to apply to it.
type Transition struct {
	Action Action
	JobID  uuid.UUID
	From   model.JobStatus
	To     model.JobStatus

	// guards
	ExpectAssignee    *string
	ExpectPostedBy    *string
	ExpectReviewUnset bool

	// effects
	AssignedTo *string
	ReviewID   *uuid.UUID
	HideFor    model.Role
	Delete     bool
}

func (t Transition) Condition() store.JobCondition {
	return store.JobCondition{
		Status:      t.From,
		AssignedTo:  t.ExpectAssignee,
		PostedBy:    t.ExpectPostedBy,
		ReviewUnset: t.ExpectReviewUnset,
	}
}

func (t Transition) Update() store.JobUpdate {
	update := store.JobUpdate{
		AssignedTo: t.AssignedTo,
		ReviewID:   t.ReviewID,
	}
	if t.To != t.From {
		to := t.To
		update.Status = &to
	}
	hidden := true
	switch t.HideFor {
	case model.RoleRequester:
		update.HiddenByRequester = &hidden
	case model.RoleProvider:
		update.HiddenByProvider = &hidden
	}
	return update
}

// Decide maps the stored job, the actor and the action to the transition to
// attempt, or to a typed rejection. It performs no I/O.
func Decide(job model.Job, actor auth.User, action Action, p Params) (Transition, error) {
	if err := checkInvariants(job); err != nil {
		return Transition{}, err
	}

	t := Transition{Action: action, JobID: job.ID, From: job.Status}

	switch action {
	case ActionAssignJob:
		if err := mustOwn(job, actor, action); err != nil {
			return t, err
		}
		if err := expectStatus(job, action, model.JobStatusOpen); err != nil {
			return t, err
		}
		if p.ProviderID == "" {
			return t, NewErrValidation("a provider id is required to assign a job")
		}
		t.To = model.JobStatusAssigned
		t.ExpectAssignee = ptr("")
		t.AssignedTo = ptr(p.ProviderID)

	case ActionAcceptPublicJob:
		if !actor.IsProvider() {
			return t, NewErrNotAuthorized("only providers can accept a job")
		}
		if job.Status.IsTerminal() {
			return t, NewErrAlreadyTerminal(action, job.Status)
		}
		if job.Status != model.JobStatusOpen {
			return t, NewErrJobNotAvailable(job.ID)
		}
		t.To = model.JobStatusRequested
		t.ExpectAssignee = ptr("")
		t.AssignedTo = ptr(actor.ID)

	case ActionAcceptWorker:
		if err := mustOwn(job, actor, action); err != nil {
			return t, err
		}
		if err := expectStatus(job, action, model.JobStatusRequested); err != nil {
			return t, err
		}
		if p.ProviderID == "" {
			return t, NewErrValidation("a provider id is required to accept a worker")
		}
		if p.ProviderID != job.AssignedTo {
			return t, &ErrInvalidState{
				error:  NewErrValidation("provider %s did not request job %s", p.ProviderID, job.ID),
				Status: job.Status,
			}
		}
		t.To = model.JobStatusInProgress
		t.ExpectAssignee = ptr(job.AssignedTo)
		t.AssignedTo = ptr(p.ProviderID)

	case ActionRejectWorker:
		if err := mustOwn(job, actor, action); err != nil {
			return t, err
		}
		if err := expectStatus(job, action, model.JobStatusRequested); err != nil {
			return t, err
		}
		t.To = model.JobStatusOpen
		t.ExpectAssignee = ptr(job.AssignedTo)
		t.AssignedTo = ptr("")

	case ActionWithdrawRequest:
		if err := mustHold(job, actor, action); err != nil {
			return t, err
		}
		if err := expectStatus(job, action, model.JobStatusRequested); err != nil {
			return t, err
		}
		t.To = model.JobStatusOpen
		t.ExpectAssignee = ptr(actor.ID)
		t.AssignedTo = ptr("")

	case ActionAcceptAssignedJob, ActionDeclineAssignedJob:
		if err := mustHold(job, actor, action); err != nil {
			return t, err
		}
		if err := expectStatus(job, action, model.JobStatusAssigned); err != nil {
			return t, err
		}
		t.ExpectAssignee = ptr(actor.ID)
		if action == ActionAcceptAssignedJob {
			t.To = model.JobStatusInProgress
		} else {
			t.To = model.JobStatusOpen
			t.AssignedTo = ptr("")
		}

	case ActionUnassignJob:
		if err := mustOwn(job, actor, action); err != nil {
			return t, err
		}
		if err := expectStatus(job, action, model.JobStatusAssigned, model.JobStatusInProgress); err != nil {
			return t, err
		}
		t.To = model.JobStatusOpen
		t.ExpectAssignee = ptr(job.AssignedTo)
		t.AssignedTo = ptr("")

	case ActionCompleteJob:
		if err := mustOwn(job, actor, action); err != nil {
			return t, err
		}
		if job.Status == model.JobStatusDone {
			return t, NewErrConflict("job %s already has a review", job.ID)
		}
		if err := expectStatus(job, action, model.JobStatusInProgress); err != nil {
			return t, err
		}
		if p.ReviewID == uuid.Nil {
			return t, NewErrValidation("a review id is required to complete a job")
		}
		t.To = model.JobStatusDone
		t.ExpectAssignee = ptr(job.AssignedTo)
		t.ExpectReviewUnset = true
		t.ReviewID = &p.ReviewID

	case ActionExpireJob:
		if actor.Role != model.RoleSystem {
			return t, NewErrNotAuthorized("only the expiry sweep can fail a job")
		}
		if err := expectStatus(job, action, model.ActiveJobStatuses...); err != nil {
			return t, err
		}
		if !p.ScheduledAt.Before(p.Now) {
			return t, &ErrInvalidState{
				error:  NewErrValidation("job %s is scheduled at %s, not before %s", job.ID, p.ScheduledAt.Format(time.RFC3339), p.Now.Format(time.RFC3339)),
				Status: job.Status,
			}
		}
		t.To = model.JobStatusFailed
		t.ExpectAssignee = ptr(job.AssignedTo)

	case ActionDeleteJob:
		if err := mustOwn(job, actor, action); err != nil {
			return t, err
		}
		if err := expectStatus(job, action, model.JobStatusOpen); err != nil {
			return t, err
		}
		t.To = model.JobStatusOpen
		t.ExpectPostedBy = ptr(actor.ID)
		t.Delete = true

	case ActionHideFailedJob:
		switch {
		case actor.IsRequester() && job.PostedBy == actor.ID:
		case actor.IsProvider() && job.AssignedTo == actor.ID:
		default:
			return t, NewErrNotAuthorized("user %s is not a party of job %s", actor.ID, job.ID)
		}
		if job.Status != model.JobStatusFailed {
			return t, NewErrInvalidState(action, job.Status)
		}
		t.To = model.JobStatusFailed
		t.HideFor = actor.Role

	default:
		return t, NewErrValidation("unknown action %q", action)
	}

	return t, nil
}

// checkInvariants rejects records that break the lifecycle invariants.
func checkInvariants(job model.Job) error {
	switch job.Status {
	case model.JobStatusOpen:
		if job.IsAssigned() {
			return NewErrInvariantViolation(job.ID, "open job is assigned to %q", job.AssignedTo)
		}
	case model.JobStatusAssigned, model.JobStatusRequested, model.JobStatusInProgress:
		if !job.IsAssigned() {
			return NewErrInvariantViolation(job.ID, "%s job has no assignee", job.Status)
		}
	case model.JobStatusDone:
		if job.ReviewID == nil {
			return NewErrInvariantViolation(job.ID, "done job has no review")
		}
		return nil
	case model.JobStatusFailed:
	default:
		return NewErrInvariantViolation(job.ID, "unknown status %q", job.Status)
	}

	if job.ReviewID != nil {
		return NewErrInvariantViolation(job.ID, "%s job has a review", job.Status)
	}
	return nil
}

func mustOwn(job model.Job, actor auth.User, action Action) error {
	if !actor.IsRequester() {
		return NewErrNotAuthorized("only requesters can %s", action.verb())
	}
	if job.PostedBy != actor.ID {
		return NewErrNotAuthorized("user %s does not own job %s", actor.ID, job.ID)
	}
	return nil
}

func mustHold(job model.Job, actor auth.User, action Action) error {
	if !actor.IsProvider() {
		return NewErrNotAuthorized("only providers can %s", action.verb())
	}
	if job.AssignedTo != actor.ID {
		return NewErrNotAuthorized("job %s is not assigned to user %s", job.ID, actor.ID)
	}
	return nil
}

func expectStatus(job model.Job, action Action, allowed ...model.JobStatus) error {
	for _, s := range allowed {
		if job.Status == s {
			return nil
		}
	}
	if job.Status.IsTerminal() {
		return NewErrAlreadyTerminal(action, job.Status)
	}
	return NewErrInvalidState(action, job.Status)
}

func ptr[T any](v T) *T {
	return &v
}
