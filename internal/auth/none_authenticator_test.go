package auth_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("none authentication", func() {
	var authenticator *auth.NoneAuthenticator

	BeforeEach(func() {
		var err error
		authenticator, err = auth.NewNoneAuthenticator()
		Expect(err).To(BeNil())
	})

	It("takes the actor from the headers", func() {
		h := &handler{}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(auth.UserIDHeader, "provider-7")
		req.Header.Set(auth.UserRoleHeader, "provider")
		rr := httptest.NewRecorder()

		authenticator.Authenticator(h).ServeHTTP(rr, req)

		Expect(rr.Code).To(Equal(http.StatusOK))
		Expect(h.user.ID).To(Equal("provider-7"))
		Expect(h.user.Role).To(Equal(model.RoleProvider))
	})

	It("rejects a missing id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(auth.UserRoleHeader, "provider")
		rr := httptest.NewRecorder()

		authenticator.Authenticator(&handler{}).ServeHTTP(rr, req)
		Expect(rr.Code).To(Equal(http.StatusUnauthorized))
		Expect(rr.Body.String()).To(ContainSubstring("unauthenticated"))
	})

	It("rejects the system role", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(auth.UserIDHeader, "system")
		req.Header.Set(auth.UserRoleHeader, "system")
		rr := httptest.NewRecorder()

		authenticator.Authenticator(&handler{}).ServeHTTP(rr, req)
		Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	})
})
