package memstore

import (
	"context"
	"time"
)

// RevocationRepo implements session.Revocations.
type RevocationRepo struct {
	s *Store
}

func (r *RevocationRepo) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	for id, exp := range r.s.revocations {
		if !now.Before(exp) {
			delete(r.s.revocations, id)
		}
	}
	if now.Before(expiresAt) {
		r.s.revocations[jti] = expiresAt
	}
	return nil
}

func (r *RevocationRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	exp, ok := r.s.revocations[jti]
	return ok && r.s.now().Before(exp), nil
}
