package api

import (
	"context"
	"time"

	"github.com/linesmerrill/human-rights-mis-api/models"
)

// QueryTimeout is the default timeout for database queries
const QueryTimeout = 10 * time.Second

type ctxKey int

const userKey ctxKey = iota

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

// WithUser stores the authenticated user on the context
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the authenticated user, or nil for anonymous requests
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// ActorFrom returns the username of the authenticated user, or "" when there is none
func ActorFrom(ctx context.Context) string {
	if u := UserFrom(ctx); u != nil {
		return u.Username
	}
	return ""
}
