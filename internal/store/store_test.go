package store_test

import (
	"context"
	"fmt"

	st "github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const insertJobStm = "INSERT INTO jobs (id, posted_by, assigned_to, category_id, title, date, time, scheduled_at, status, created_at, updated_at) VALUES ('%s', '%s', '%s', '%s', 'fix sink', '%s', '10:00', '2099-01-01 10:00:00', '%s', '2025-01-01 00:00:00', '2025-01-01 00:00:00');"
const insertUserStm = "INSERT INTO users (id, role, name, available) VALUES ('%s', '%s', '%s', %t);"

var _ = Describe("Store", Ordered, func() {
	var (
		store   st.Store
		gormDB  *gorm.DB
		cleanup func()
	)

	BeforeAll(func() {
		store, gormDB, cleanup = openTestStore()
	})

	AfterAll(func() {
		cleanup()
	})

	AfterEach(func() {
		gormDB.Exec("DELETE FROM reviews;")
		gormDB.Exec("DELETE FROM jobs;")
		gormDB.Exec("DELETE FROM users;")
		gormDB.Exec("DELETE FROM categories;")
	})

	Context("transaction", func() {
		It("commits a review successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			review, err := store.Review().Create(ctx, model.Review{ID: uuid.New(), JobID: uuid.New(), ProviderID: "p1", RequesterID: "r1", Rating: 5})
			Expect(err).To(BeNil())
			Expect(review).ToNot(BeNil())

			_, err = st.Commit(ctx)
			Expect(err).To(BeNil())

			count := 0
			Expect(gormDB.Raw("SELECT COUNT(*) FROM reviews;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rolls back a review successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			_, err = store.Review().Create(ctx, model.Review{ID: uuid.New(), JobID: uuid.New(), ProviderID: "p1", RequesterID: "r1", Rating: 4})
			Expect(err).To(BeNil())

			// visible inside the transaction
			reviews, err := store.Review().List(ctx, st.NewReviewQueryFilter().ByProvider("p1"))
			Expect(err).To(BeNil())
			Expect(reviews).To(HaveLen(1))

			_, err = st.Rollback(ctx)
			Expect(err).To(BeNil())

			count := 0
			Expect(gormDB.Raw("SELECT COUNT(*) FROM reviews;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("reuses the transaction carried by the context", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())
			same, err := store.NewTransactionContext(ctx)
			Expect(err).To(BeNil())
			Expect(st.FromContext(same)).To(Equal(st.FromContext(ctx)))
			_, err = st.Rollback(ctx)
			Expect(err).To(BeNil())
		})
	})

	Context("job conditional update", func() {
		var (
			jobID    uuid.UUID
			provider = "provider-a"
		)

		BeforeEach(func() {
			jobID = uuid.New()
			tx := gormDB.Exec(fmt.Sprintf(insertJobStm, jobID, "requester-1", "", uuid.New(), "2099-01-01", model.JobStatusOpen))
			Expect(tx.Error).To(BeNil())
		})

		It("applies the update when the guard matches", func() {
			status := model.JobStatusRequested
			empty := ""
			job, err := store.Job().ConditionalUpdate(context.TODO(), jobID,
				st.JobCondition{Status: model.JobStatusOpen, AssignedTo: &empty},
				st.JobUpdate{Status: &status, AssignedTo: &provider})
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal(model.JobStatusRequested))
			Expect(job.AssignedTo).To(Equal(provider))
		})

		It("reports no match when the status moved", func() {
			status := model.JobStatusInProgress
			_, err := store.Job().ConditionalUpdate(context.TODO(), jobID,
				st.JobCondition{Status: model.JobStatusRequested},
				st.JobUpdate{Status: &status})
			Expect(err).To(MatchError(st.ErrNoMatch))

			var stored string
			Expect(gormDB.Raw(fmt.Sprintf("SELECT status FROM jobs WHERE id = '%s';", jobID)).Scan(&stored).Error).To(BeNil())
			Expect(stored).To(Equal(string(model.JobStatusOpen)))
		})

		It("reports no match when the assignee differs", func() {
			status := model.JobStatusRequested
			other := "provider-b"
			_, err := store.Job().ConditionalUpdate(context.TODO(), jobID,
				st.JobCondition{Status: model.JobStatusOpen, AssignedTo: &other},
				st.JobUpdate{Status: &status, AssignedTo: &provider})
			Expect(err).To(MatchError(st.ErrNoMatch))
		})

		It("guards on an unset review", func() {
			reviewID := uuid.New()
			status := model.JobStatusDone
			Expect(gormDB.Exec(fmt.Sprintf("UPDATE jobs SET review_id = '%s' WHERE id = '%s';", uuid.New(), jobID)).Error).To(BeNil())

			_, err := store.Job().ConditionalUpdate(context.TODO(), jobID,
				st.JobCondition{Status: model.JobStatusOpen, ReviewUnset: true},
				st.JobUpdate{Status: &status, ReviewID: &reviewID})
			Expect(err).To(MatchError(st.ErrNoMatch))
		})

		It("reports no match for an unknown job", func() {
			status := model.JobStatusAssigned
			_, err := store.Job().ConditionalUpdate(context.TODO(), uuid.New(),
				st.JobCondition{Status: model.JobStatusOpen},
				st.JobUpdate{Status: &status})
			Expect(err).To(MatchError(st.ErrNoMatch))
		})

		It("deletes only when the guard matches", func() {
			owner := "someone-else"
			err := store.Job().ConditionalDelete(context.TODO(), jobID, st.JobCondition{Status: model.JobStatusOpen, PostedBy: &owner})
			Expect(err).To(MatchError(st.ErrNoMatch))

			owner = "requester-1"
			err = store.Job().ConditionalDelete(context.TODO(), jobID, st.JobCondition{Status: model.JobStatusOpen, PostedBy: &owner})
			Expect(err).To(BeNil())

			_, err = store.Job().Get(context.TODO(), jobID)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("job list", func() {
		BeforeEach(func() {
			for i, status := range []model.JobStatus{model.JobStatusOpen, model.JobStatusAssigned, model.JobStatusInProgress, model.JobStatusDone} {
				assignee := ""
				if status != model.JobStatusOpen {
					assignee = fmt.Sprintf("provider-%d", i)
				}
				tx := gormDB.Exec(fmt.Sprintf(insertJobStm, uuid.New(), "requester-1", assignee, uuid.New(), "2099-01-01", status))
				Expect(tx.Error).To(BeNil())
			}
		})

		It("filters by status", func() {
			jobs, err := store.Job().List(context.TODO(), st.NewJobQueryFilter().ByStatus(model.ActiveJobStatuses...), nil)
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(2))
		})

		It("filters by requester and visibility", func() {
			Expect(gormDB.Exec("UPDATE jobs SET hidden_by_requester = true WHERE status = 'done';").Error).To(BeNil())

			jobs, err := store.Job().List(context.TODO(), st.NewJobQueryFilter().ByPostedBy("requester-1").VisibleTo(model.RoleRequester), st.NewJobQueryOptions().WithSortOrder(st.SortByScheduledTime))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(3))
		})

		It("filters by assignee", func() {
			jobs, err := store.Job().List(context.TODO(), st.NewJobQueryFilter().ByAssignedTo("provider-1"), nil)
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Status).To(Equal(model.JobStatusAssigned))
		})
	})

	Context("availability", func() {
		BeforeEach(func() {
			for _, stm := range []string{
				fmt.Sprintf(insertUserStm, "p1", model.RoleProvider, "one", true),
				fmt.Sprintf(insertUserStm, "p2", model.RoleProvider, "two", true),
				fmt.Sprintf(insertUserStm, "p3", model.RoleProvider, "three", false),
				fmt.Sprintf(insertUserStm, "r1", model.RoleRequester, "req", false),
				fmt.Sprintf(insertJobStm, uuid.New(), "r1", "p1", uuid.New(), "2099-01-01", model.JobStatusInProgress),
				fmt.Sprintf(insertJobStm, uuid.New(), "r1", "p1", uuid.New(), "2099-01-01", model.JobStatusInProgress),
				fmt.Sprintf(insertJobStm, uuid.New(), "r1", "p2", uuid.New(), "2099-01-02", model.JobStatusInProgress),
				fmt.Sprintf(insertJobStm, uuid.New(), "r1", "p3", uuid.New(), "2099-01-01", model.JobStatusAssigned),
			} {
				Expect(gormDB.Exec(stm).Error).To(BeNil())
			}
		})

		It("lists distinct busy providers for a day", func() {
			busy, err := store.Job().BusyProviders(context.TODO(), "2099-01-01")
			Expect(err).To(BeNil())
			Expect(busy).To(Equal([]string{"p1"}))
		})

		It("reconciles providers only", func() {
			changed, err := store.User().ReconcileAvailability(context.TODO(), []string{"p1"})
			Expect(err).To(BeNil())
			// p1 becomes busy and p3 free
			Expect(changed).To(BeEquivalentTo(2))

			available := func(id string) bool {
				u, err := store.User().Get(context.TODO(), id)
				Expect(err).To(BeNil())
				return u.Available
			}
			Expect(available("p1")).To(BeFalse())
			Expect(available("p2")).To(BeTrue())
			Expect(available("p3")).To(BeTrue())
			Expect(available("r1")).To(BeFalse())

			changed, err = store.User().ReconcileAvailability(context.TODO(), []string{"p1"})
			Expect(err).To(BeNil())
			Expect(changed).To(BeEquivalentTo(0))
		})

		It("frees every provider when nobody is busy", func() {
			_, err := store.User().ReconcileAvailability(context.TODO(), nil)
			Expect(err).To(BeNil())

			users, err := store.User().List(context.TODO(), st.NewUserQueryFilter().ByRole(model.RoleProvider).ByAvailable(false))
			Expect(err).To(BeNil())
			Expect(users).To(BeEmpty())
		})

		It("does not overwrite availability of a known user", func() {
			u, err := store.User().Ensure(context.TODO(), model.User{ID: "p3", Role: model.RoleProvider})
			Expect(err).To(BeNil())
			Expect(u.Available).To(BeFalse())

			u, err = store.User().Ensure(context.TODO(), model.User{ID: "p9", Role: model.RoleProvider})
			Expect(err).To(BeNil())
			Expect(u.Available).To(BeTrue())
		})
	})

	Context("reviews", func() {
		It("refuses a second review for the same job", func() {
			jobID := uuid.New()
			_, err := store.Review().Create(context.TODO(), model.Review{ID: uuid.New(), JobID: jobID, ProviderID: "p1", RequesterID: "r1", Rating: 5})
			Expect(err).To(BeNil())

			_, err = store.Review().Create(context.TODO(), model.Review{ID: uuid.New(), JobID: jobID, ProviderID: "p1", RequesterID: "r1", Rating: 1})
			Expect(err).To(MatchError(st.ErrDuplicateKey))
		})

		It("hides a review", func() {
			review, err := store.Review().Create(context.TODO(), model.Review{ID: uuid.New(), JobID: uuid.New(), ProviderID: "p1", RequesterID: "r1", Rating: 3})
			Expect(err).To(BeNil())

			hidden := true
			updated, err := store.Review().UpdateVisibility(context.TODO(), review.ID, nil, &hidden)
			Expect(err).To(BeNil())
			Expect(updated.HiddenByProvider).To(BeTrue())
			Expect(updated.HiddenByRequester).To(BeFalse())

			reviews, err := store.Review().List(context.TODO(), st.NewReviewQueryFilter().ByProvider("p1").Public())
			Expect(err).To(BeNil())
			Expect(reviews).To(BeEmpty())
		})
	})

	Context("category", func() {
		It("seeds the catalog and serves icons", func() {
			Expect(store.Seed(context.TODO())).To(BeNil())
			// seeding twice is harmless
			Expect(store.Seed(context.TODO())).To(BeNil())

			categories, err := store.Category().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(categories).ToNot(BeEmpty())

			icon, err := store.Category().Icon(context.TODO(), categories[0].ID)
			Expect(err).To(BeNil())
			Expect(icon).To(Equal(categories[0].Icon))
		})

		It("reports unknown categories", func() {
			_, err := store.Category().Icon(context.TODO(), uuid.New())
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})
})
