package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/human-rights-mis-api/config"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

// Authenticator resolves bearer tokens to users and checks their roles
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Authorize(user *models.User, roles ...string) error
}

// Middleware guards routes with bearer token authentication
type Middleware struct {
	Auth Authenticator
}

// Require only lets through requests carrying a valid bearer token for a user
// holding at least one of roles. With no roles any authenticated user passes.
func (m Middleware) Require(roles ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			user, err := m.Auth.Authenticate(r.Context(), bearerToken(r))
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				status := http.StatusUnauthorized
				if models.KindOf(err) == models.KindStorage {
					status = http.StatusInternalServerError
				}
				config.ErrorStatus("unauthorized", status, w, err)
				return
			}
			if err := m.Auth.Authorize(user, roles...); err != nil {
				config.ErrorStatus("forbidden", http.StatusForbidden, w, err)
				return
			}
			zap.S().Debugw("user authenticated", "username", user.Username, "path", r.URL.Path)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
