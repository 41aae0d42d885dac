package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRedisRepo stores revoked token ids as keys that expire together
// with the token.
type RevocationRedisRepo struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

func NewRevocationRedisRepo(client redis.UniversalClient, prefix string, timeout time.Duration) *RevocationRedisRepo {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "bookreview:revoked"
	}
	return &RevocationRedisRepo{client: client, prefix: prefix, timeout: timeout}
}

func (r *RevocationRedisRepo) key(jti string) string {
	return r.prefix + ":" + jti
}

func (r *RevocationRedisRepo) Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.Set(ctx, r.key(jti), userID, ttl).Err()
}

func (r *RevocationRedisRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	err := r.client.Get(ctx, r.key(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
