package service_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/service"
	"github.com/AakashShahi/workday/internal/service/mappers"
	st "github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const insertReviewStm = "INSERT INTO reviews (id, job_id, provider_id, requester_id, rating, comment, hidden_by_requester, hidden_by_provider, created_at) VALUES ('%s', '%s', '%s', '%s', %d, 'ok', false, false, '%s');"

var _ = Describe("review service", Ordered, func() {
	var (
		store   st.Store
		gormDB  *gorm.DB
		cleanup func()
		svc     *service.ReviewService

		requester = auth.User{ID: requesterID, Role: model.RoleRequester}
		provA     = auth.User{ID: providerA, Role: model.RoleProvider}
		provB     = auth.User{ID: providerB, Role: model.RoleProvider}
	)

	insertJob := func(status model.JobStatus, assignedTo string) uuid.UUID {
		id := uuid.New()
		tx := gormDB.Exec(fmt.Sprintf(insertJobStm, id, requesterID, assignedTo, futureDate, futureTime, futureScheduled, status))
		Expect(tx.Error).To(BeNil())
		return id
	}

	insertReview := func(jobID uuid.UUID, providerID string, rating int, createdAt string) uuid.UUID {
		id := uuid.New()
		tx := gormDB.Exec(fmt.Sprintf(insertReviewStm, id, jobID, providerID, requesterID, rating, createdAt))
		Expect(tx.Error).To(BeNil())
		return id
	}

	BeforeAll(func() {
		store, gormDB, cleanup = openTestStore()
		svc = service.NewReviewService(store)
	})

	AfterAll(func() {
		cleanup()
	})

	AfterEach(func() {
		cleanTables(gormDB)
	})

	Context("complete", func() {
		It("rolls the transition back when the review cannot be stored", func() {
			id := insertJob(model.JobStatusInProgress, providerA)
			// a stray review already holds the job id
			insertReview(id, providerA, 3, "2025-01-01 00:00:00")

			_, _, err := svc.CompleteJob(context.TODO(), requester, id, mappers.ReviewForm{Rating: 4})
			Expect(service.Reason(err)).To(Equal(service.ReasonConflict))

			job, err := store.Job().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal(model.JobStatusInProgress))
			Expect(job.ReviewID).To(BeNil())

			count := 0
			Expect(gormDB.Raw("SELECT COUNT(*) FROM reviews;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("stores a single review when completions race", func() {
			id := insertJob(model.JobStatusInProgress, providerA)

			errs := make([]error, 8)
			var wg sync.WaitGroup
			start := make(chan struct{})
			for i := range errs {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					<-start
					_, _, errs[i] = svc.CompleteJob(context.TODO(), requester, id, mappers.ReviewForm{Rating: 1 + i%5})
				}(i)
			}
			close(start)
			wg.Wait()

			completed := 0
			for _, err := range errs {
				if err == nil {
					completed++
					continue
				}
				Expect(service.Reason(err)).To(Equal(service.ReasonConflict), err.Error())
			}
			Expect(completed).To(Equal(1))

			job, err := store.Job().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal(model.JobStatusDone))

			list, err := store.Review().List(context.TODO(), st.NewReviewQueryFilter().ByJob(id))
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(*job.ReviewID))
		})

		It("only lets the owner complete", func() {
			id := insertJob(model.JobStatusInProgress, providerA)

			_, _, err := svc.CompleteJob(context.TODO(), auth.User{ID: "requester-2", Role: model.RoleRequester}, id, mappers.ReviewForm{Rating: 4})
			Expect(service.Reason(err)).To(Equal(service.ReasonNotAuthorized))
		})

		It("reports an unknown job", func() {
			_, _, err := svc.CompleteJob(context.TODO(), requester, uuid.New(), mappers.ReviewForm{Rating: 4})
			Expect(service.Reason(err)).To(Equal(service.ReasonNotFound))
		})
	})

	Context("provider reviews", func() {
		It("lists the public reviews of a provider, newest first", func() {
			older := insertReview(uuid.New(), providerA, 3, "2025-01-01 00:00:00")
			newer := insertReview(uuid.New(), providerA, 5, "2025-02-01 00:00:00")
			insertReview(uuid.New(), providerB, 1, "2025-02-01 00:00:00")

			list, err := svc.ListProviderReviews(context.TODO(), providerA)
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(newer))
			Expect(list[1].ID).To(Equal(older))
		})

		It("drops a review once a party hides it", func() {
			id := insertReview(uuid.New(), providerA, 2, "2025-01-01 00:00:00")

			review, err := svc.HideReview(context.TODO(), provA, id)
			Expect(err).To(BeNil())
			Expect(review.HiddenByProvider).To(BeTrue())
			Expect(review.HiddenByRequester).To(BeFalse())

			list, err := svc.ListProviderReviews(context.TODO(), providerA)
			Expect(err).To(BeNil())
			Expect(list).To(BeEmpty())
		})

		It("lets the requester hide its side", func() {
			id := insertReview(uuid.New(), providerA, 2, "2025-01-01 00:00:00")

			review, err := svc.HideReview(context.TODO(), requester, id)
			Expect(err).To(BeNil())
			Expect(review.HiddenByRequester).To(BeTrue())
			Expect(review.HiddenByProvider).To(BeFalse())
		})

		It("refuses strangers", func() {
			id := insertReview(uuid.New(), providerA, 2, "2025-01-01 00:00:00")

			_, err := svc.HideReview(context.TODO(), provB, id)
			Expect(service.Reason(err)).To(Equal(service.ReasonNotAuthorized))

			_, err = svc.HideReview(context.TODO(), provB, uuid.New())
			Expect(service.Reason(err)).To(Equal(service.ReasonNotFound))
		})
	})
})
