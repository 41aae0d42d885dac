package session

import (
	"context"
	"time"
)

// Revocations remembers token ids that were logged out before expiry.
// Entries only need to live until expiresAt.
type Revocations interface {
	Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
