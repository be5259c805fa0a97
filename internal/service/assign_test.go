package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/service"
	st "github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

// deadlineUsers records whether each user lookup ran under a deadline.
type deadlineUsers struct {
	st.User
	mu        sync.Mutex
	deadlines []bool
}

func (u *deadlineUsers) Get(ctx context.Context, id string) (*model.User, error) {
	_, ok := ctx.Deadline()
	u.mu.Lock()
	u.deadlines = append(u.deadlines, ok)
	u.mu.Unlock()
	return u.User.Get(ctx, id)
}

type deadlineStore struct {
	st.Store
	users *deadlineUsers
}

func (s *deadlineStore) User() st.User {
	return s.users
}

var _ = Describe("assigning a provider", Ordered, func() {
	var (
		store   st.Store
		gormDB  *gorm.DB
		cleanup func()
		users   *deadlineUsers
		svc     *service.JobService

		requester = auth.User{ID: requesterID, Role: model.RoleRequester}
	)

	BeforeAll(func() {
		store, gormDB, cleanup = openTestStore()
		users = &deadlineUsers{User: store.User()}
		svc = service.NewJobService(&deadlineStore{Store: store, users: users},
			service.WithStoreTimeout(5*time.Second))
	})

	AfterAll(func() {
		cleanup()
	})

	AfterEach(func() {
		cleanTables(gormDB)
	})

	It("bounds the provider lookup by the store timeout", func() {
		id := uuid.New()
		Expect(gormDB.Exec(fmt.Sprintf(insertJobStm, id, requesterID, "", futureDate, futureTime, futureScheduled, model.JobStatusOpen)).Error).To(BeNil())
		Expect(gormDB.Exec(fmt.Sprintf(insertUserStm, providerA, model.RoleProvider, "Ana")).Error).To(BeNil())

		job, err := svc.AssignJob(context.Background(), requester, id, providerA)
		Expect(err).To(BeNil())
		Expect(job.Status).To(Equal(model.JobStatusAssigned))

		Expect(users.deadlines).To(Equal([]bool{true}))
	})
})
