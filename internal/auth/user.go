package auth

import (
	"context"

	"github.com/AakashShahi/workday/internal/store/model"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type userKeyType struct{}

var (
	userKey userKeyType
)

// User is the authenticated actor of a call.
type User struct {
	ID    string
	Role  model.Role
	Token *jwt.Token
}

// SystemUser is the actor of the periodic sweeps.
var SystemUser = User{ID: "system", Role: model.RoleSystem}

func (u User) IsRequester() bool {
	return u.Role == model.RoleRequester
}

func (u User) IsProvider() bool {
	return u.Role == model.RoleProvider
}

func UserFromContext(ctx context.Context) (User, bool) {
	val := ctx.Value(userKey)
	if val == nil {
		return User{}, false
	}
	user, ok := val.(User)
	return user, ok
}

func MustHaveUser(ctx context.Context) User {
	user, found := UserFromContext(ctx)
	if !found {
		zap.S().Named("auth").Panic("failed to find user in context")
	}
	return user
}

func NewUserContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}
