package apiserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	apiserver "github.com/AakashShahi/workday/internal/api_server"
	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/config"
	"github.com/AakashShahi/workday/internal/service"
	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/AakashShahi/workday/pkg/requestid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("api server router", Ordered, func() {
	var (
		s      store.Store
		dir    string
		router http.Handler
	)

	BeforeAll(func() {
		var err error
		dir, err = os.MkdirTemp("", "workday-apiserver-")
		Expect(err).To(BeNil())

		cfg := config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = filepath.Join(dir, "workday.db") + "?_busy_timeout=5000"

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		s = store.NewStore(db)
		Expect(s.InitialMigration(context.TODO())).To(BeNil())
		Expect(s.Seed(context.TODO())).To(BeNil())

		authenticator, err := auth.NewNoneAuthenticator()
		Expect(err).To(BeNil())

		srv := apiserver.New(cfg, s, nil, service.NewJobService(s), service.NewReviewService(s))
		router = srv.Router(authenticator)
	})

	AfterAll(func() {
		_ = s.Close()
		_ = os.RemoveAll(dir)
	})

	It("answers health checks anonymously and tags the response", func() {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestid.Header, "req-42")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get(requestid.Header)).To(Equal("req-42"))
	})

	It("guards the api", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/jobs/open", nil))

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("projects callers into the users table", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/open", nil)
		req.Header.Set(auth.UserIDHeader, "provider-z")
		req.Header.Set(auth.UserRoleHeader, string(model.RoleProvider))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))

		user, err := s.User().Get(context.TODO(), "provider-z")
		Expect(err).To(BeNil())
		Expect(user.Role).To(Equal(model.RoleProvider))
		Expect(user.Available).To(BeTrue())
	})
})
