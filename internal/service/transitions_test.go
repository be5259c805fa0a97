package service_test

import (
	"errors"
	"time"

	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/service"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decide", func() {
	var (
		requester = auth.User{ID: requesterID, Role: model.RoleRequester}
		stranger  = auth.User{ID: otherRequester, Role: model.RoleRequester}
		provA     = auth.User{ID: providerA, Role: model.RoleProvider}
		provB     = auth.User{ID: providerB, Role: model.RoleProvider}
	)

	job := func(status model.JobStatus, assignedTo string) model.Job {
		j := model.Job{ID: uuid.New(), PostedBy: requesterID, AssignedTo: assignedTo, Status: status}
		if status == model.JobStatusDone {
			reviewID := uuid.New()
			j.ReviewID = &reviewID
		}
		return j
	}

	DescribeTable("allowed transitions",
		func(j model.Job, actor auth.User, action service.Action, p service.Params, to model.JobStatus, assignedTo *string) {
			t, err := service.Decide(j, actor, action, p)
			Expect(err).To(BeNil())
			Expect(t.From).To(Equal(j.Status))
			Expect(t.To).To(Equal(to))
			if assignedTo == nil {
				Expect(t.AssignedTo).To(BeNil())
			} else {
				Expect(t.AssignedTo).To(Equal(assignedTo))
			}
		},
		Entry("requester assigns an open job", job(model.JobStatusOpen, ""), requester, service.ActionAssignJob, service.Params{ProviderID: providerA}, model.JobStatusAssigned, ptr(providerA)),
		Entry("provider accepts an open job", job(model.JobStatusOpen, ""), provA, service.ActionAcceptPublicJob, service.Params{}, model.JobStatusRequested, ptr(providerA)),
		Entry("requester accepts the requesting worker", job(model.JobStatusRequested, providerA), requester, service.ActionAcceptWorker, service.Params{ProviderID: providerA}, model.JobStatusInProgress, ptr(providerA)),
		Entry("requester rejects the worker", job(model.JobStatusRequested, providerA), requester, service.ActionRejectWorker, service.Params{}, model.JobStatusOpen, ptr("")),
		Entry("provider withdraws its request", job(model.JobStatusRequested, providerA), provA, service.ActionWithdrawRequest, service.Params{}, model.JobStatusOpen, ptr("")),
		Entry("provider accepts an assigned job", job(model.JobStatusAssigned, providerA), provA, service.ActionAcceptAssignedJob, service.Params{}, model.JobStatusInProgress, nil),
		Entry("provider declines an assigned job", job(model.JobStatusAssigned, providerA), provA, service.ActionDeclineAssignedJob, service.Params{}, model.JobStatusOpen, ptr("")),
		Entry("requester unassigns an assigned job", job(model.JobStatusAssigned, providerA), requester, service.ActionUnassignJob, service.Params{}, model.JobStatusOpen, ptr("")),
		Entry("requester unassigns an in-progress job", job(model.JobStatusInProgress, providerA), requester, service.ActionUnassignJob, service.Params{}, model.JobStatusOpen, ptr("")),
		Entry("requester completes an in-progress job", job(model.JobStatusInProgress, providerA), requester, service.ActionCompleteJob, service.Params{ReviewID: uuid.New()}, model.JobStatusDone, nil),
		Entry("requester deletes an open job", job(model.JobStatusOpen, ""), requester, service.ActionDeleteJob, service.Params{}, model.JobStatusOpen, nil),
		Entry("provider hides a failed job", job(model.JobStatusFailed, providerA), provA, service.ActionHideFailedJob, service.Params{}, model.JobStatusFailed, nil),
	)

	DescribeTable("rejected transitions",
		func(j model.Job, actor auth.User, action service.Action, p service.Params, reason string) {
			_, err := service.Decide(j, actor, action, p)
			Expect(err).ToNot(BeNil())
			Expect(service.Reason(err)).To(Equal(reason))
		},
		Entry("provider cannot assign", job(model.JobStatusOpen, ""), provA, service.ActionAssignJob, service.Params{ProviderID: providerB}, service.ReasonNotAuthorized),
		Entry("stranger cannot assign", job(model.JobStatusOpen, ""), stranger, service.ActionAssignJob, service.Params{ProviderID: providerA}, service.ReasonNotAuthorized),
		Entry("assign needs a provider", job(model.JobStatusOpen, ""), requester, service.ActionAssignJob, service.Params{}, service.ReasonValidation),
		Entry("requested job is not available", job(model.JobStatusRequested, providerA), provB, service.ActionAcceptPublicJob, service.Params{}, service.ReasonConflict),
		Entry("failed job cannot be accepted", job(model.JobStatusFailed, providerA), provB, service.ActionAcceptPublicJob, service.Params{}, service.ReasonAlreadyTerminal),
		Entry("accept worker other than the requesting one", job(model.JobStatusRequested, providerA), requester, service.ActionAcceptWorker, service.Params{ProviderID: providerB}, service.ReasonInvalidState),
		Entry("accept worker on an open job", job(model.JobStatusOpen, ""), requester, service.ActionAcceptWorker, service.Params{ProviderID: providerA}, service.ReasonInvalidState),
		Entry("other provider cannot withdraw", job(model.JobStatusRequested, providerA), provB, service.ActionWithdrawRequest, service.Params{}, service.ReasonNotAuthorized),
		Entry("accept assigned on an expired job", job(model.JobStatusFailed, providerA), provA, service.ActionAcceptAssignedJob, service.Params{}, service.ReasonAlreadyTerminal),
		Entry("unassign an open job", job(model.JobStatusOpen, ""), requester, service.ActionUnassignJob, service.Params{}, service.ReasonInvalidState),
		Entry("complete a requested job", job(model.JobStatusRequested, providerA), requester, service.ActionCompleteJob, service.Params{ReviewID: uuid.New()}, service.ReasonInvalidState),
		Entry("complete a done job twice", job(model.JobStatusDone, providerA), requester, service.ActionCompleteJob, service.Params{ReviewID: uuid.New()}, service.ReasonConflict),
		Entry("provider cannot complete", job(model.JobStatusInProgress, providerA), provA, service.ActionCompleteJob, service.Params{ReviewID: uuid.New()}, service.ReasonNotAuthorized),
		Entry("users cannot expire", job(model.JobStatusAssigned, providerA), requester, service.ActionExpireJob, service.Params{}, service.ReasonNotAuthorized),
		Entry("delete an assigned job", job(model.JobStatusAssigned, providerA), requester, service.ActionDeleteJob, service.Params{}, service.ReasonInvalidState),
		Entry("hide a job that did not fail", job(model.JobStatusOpen, ""), requester, service.ActionHideFailedJob, service.Params{}, service.ReasonInvalidState),
		Entry("stranger cannot hide", job(model.JobStatusFailed, providerA), provB, service.ActionHideFailedJob, service.Params{}, service.ReasonNotAuthorized),
		Entry("open job with an assignee", job(model.JobStatusOpen, providerA), provB, service.ActionAcceptPublicJob, service.Params{}, service.ReasonInvariantViolation),
		Entry("in-progress job without assignee", job(model.JobStatusInProgress, ""), requester, service.ActionCompleteJob, service.Params{ReviewID: uuid.New()}, service.ReasonInvariantViolation),
	)

	It("reports already terminal as an invalid state", func() {
		_, err := service.Decide(job(model.JobStatusFailed, providerA), provA, service.ActionAcceptAssignedJob, service.Params{})

		var invalid *service.ErrInvalidState
		Expect(err).To(BeAssignableToTypeOf(&service.ErrAlreadyTerminal{}))
		Expect(errors.As(err, &invalid)).To(BeTrue())
		Expect(invalid.Status).To(Equal(model.JobStatusFailed))
	})

	Context("expire", func() {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		It("fails an active job scheduled in the past", func() {
			t, err := service.Decide(job(model.JobStatusRequested, providerA), auth.SystemUser, service.ActionExpireJob,
				service.Params{Now: now, ScheduledAt: now.Add(-time.Minute)})
			Expect(err).To(BeNil())
			Expect(t.To).To(Equal(model.JobStatusFailed))
			Expect(t.Condition().Status).To(Equal(model.JobStatusRequested))
			Expect(t.Condition().AssignedTo).ToNot(BeNil())
			Expect(*t.Condition().AssignedTo).To(Equal(providerA))
		})

		It("keeps a job scheduled exactly now", func() {
			_, err := service.Decide(job(model.JobStatusAssigned, providerA), auth.SystemUser, service.ActionExpireJob,
				service.Params{Now: now, ScheduledAt: now})
			Expect(service.Reason(err)).To(Equal(service.ReasonInvalidState))
		})

		It("never fails an open job", func() {
			_, err := service.Decide(job(model.JobStatusOpen, ""), auth.SystemUser, service.ActionExpireJob,
				service.Params{Now: now, ScheduledAt: now.Add(-time.Hour)})
			Expect(service.Reason(err)).To(Equal(service.ReasonInvalidState))
		})
	})

	Context("guards", func() {
		It("pins the assignee and the unset review on completion", func() {
			reviewID := uuid.New()
			t, err := service.Decide(job(model.JobStatusInProgress, providerA), requester, service.ActionCompleteJob, service.Params{ReviewID: reviewID})
			Expect(err).To(BeNil())

			cond := t.Condition()
			Expect(cond.Status).To(Equal(model.JobStatusInProgress))
			Expect(*cond.AssignedTo).To(Equal(providerA))
			Expect(cond.ReviewUnset).To(BeTrue())

			update := t.Update()
			Expect(*update.Status).To(Equal(model.JobStatusDone))
			Expect(*update.ReviewID).To(Equal(reviewID))
		})

		It("only sets the actor's flag when hiding", func() {
			t, err := service.Decide(job(model.JobStatusFailed, providerA), requester, service.ActionHideFailedJob, service.Params{})
			Expect(err).To(BeNil())

			update := t.Update()
			Expect(update.Status).To(BeNil())
			Expect(*update.HiddenByRequester).To(BeTrue())
			Expect(update.HiddenByProvider).To(BeNil())
		})
	})
})

func ptr[T any](v T) *T {
	return &v
}
