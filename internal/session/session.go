// Package session carries the authenticated caller through a request and
// keeps the list of revoked tokens.
package session

import (
	"context"
	"time"
)

// Session is the verified identity behind a bearer token.
type Session struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

type contextKey struct{}

// NewContext returns a copy of ctx that carries s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// UserIDFrom returns the authenticated user id, or "" for anonymous calls.
func UserIDFrom(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.UserID
}
