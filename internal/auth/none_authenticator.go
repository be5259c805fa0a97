package auth

import (
	"net/http"

	"github.com/AakashShahi/workday/internal/store/model"
)

const (
	UserIDHeader   = "X-User-Id"
	UserRoleHeader = "X-User-Role"
)

// NoneAuthenticator trusts the identity headers set by the caller. It is
// meant for development behind a trusted gateway.
type NoneAuthenticator struct{}

func NewNoneAuthenticator() (*NoneAuthenticator, error) {
	return &NoneAuthenticator{}, nil
}

func (n *NoneAuthenticator) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := User{
			ID:   r.Header.Get(UserIDHeader),
			Role: model.Role(r.Header.Get(UserRoleHeader)),
		}
		if user.ID == "" {
			unauthenticated(w, r, "missing "+UserIDHeader+" header")
			return
		}
		// the system role is reserved to the sweeps
		if user.Role != model.RoleRequester && user.Role != model.RoleProvider {
			unauthenticated(w, r, "invalid "+UserRoleHeader+" header")
			return
		}

		next.ServeHTTP(w, r.WithContext(NewUserContext(r.Context(), user)))
	})
}
