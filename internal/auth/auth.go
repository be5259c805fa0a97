package auth

import (
	"context"
	"net/http"

	"github.com/AakashShahi/workday/internal/config"
	"github.com/AakashShahi/workday/pkg/requestid"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticator(next http.Handler) http.Handler
}

const (
	JWTAuthentication  string = "jwt"
	NoneAuthentication string = "none"
)

func NewAuthenticator(authConfig config.Auth) (Authenticator, error) {
	zap.S().Named("auth").Infof("authentication: '%s'", authConfig.AuthenticationType)

	switch authConfig.AuthenticationType {
	case JWTAuthentication:
		return NewJWTAuthenticator(context.Background(), authConfig.JwkCertURL)
	default:
		return NewNoneAuthenticator()
	}
}

type unauthenticatedResponse struct {
	Message   string `json:"message"`
	Reason    string `json:"reason"`
	RequestID string `json:"requestId,omitempty"`
}

func unauthenticated(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, unauthenticatedResponse{
		Message:   msg,
		Reason:    "unauthenticated",
		RequestID: requestid.FromRequest(r),
	})
}
