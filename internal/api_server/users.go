package apiserver

import (
	"net/http"
	"sync"

	"github.com/AakashShahi/workday/internal/auth"
	"github.com/AakashShahi/workday/internal/store"
	"github.com/AakashShahi/workday/internal/store/model"
	"go.uber.org/zap"
)

// userProjection records every authenticated identity in the users table the
// first time it is seen by this process. Failures are logged and the request
// goes on: the projection only feeds role checks and availability.
type userProjection struct {
	store store.Store
	seen  sync.Map
}

func newUserProjection(s store.Store) *userProjection {
	return &userProjection{store: s}
}

func (p *userProjection) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, found := auth.UserFromContext(r.Context())
		if !found || user.Role == model.RoleSystem {
			next.ServeHTTP(w, r)
			return
		}

		if _, known := p.seen.Load(user.ID); !known {
			_, err := p.store.User().Ensure(r.Context(), model.User{ID: user.ID, Role: user.Role, Available: true})
			if err != nil {
				zap.S().Named("api_server").Warnw("failed to record user", "user_id", user.ID, "error", err)
			} else {
				p.seen.Store(user.ID, struct{}{})
			}
		}

		next.ServeHTTP(w, r)
	})
}
