package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookreview/internal/apperr"
	"bookreview/internal/memstore"
	"bookreview/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

type failingRevocations struct{}

func (failingRevocations) Revoke(context.Context, string, string, time.Time) error {
	return errors.New("store down")
}

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}

func TestIssuer_IssueAndVerify(t *testing.T) {
	ctx := context.Background()
	issuer := NewIssuer(testSecret, time.Hour, memstore.New().Revocations())

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	sess, err := issuer.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sess.UserID)
	assert.NotEmpty(t, sess.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)
}

func TestIssuer_VerifyRejects(t *testing.T) {
	ctx := context.Background()
	issuer := NewIssuer(testSecret, time.Hour, memstore.New().Revocations())

	other := NewIssuer("wrong-secret", time.Hour, memstore.New().Revocations())
	foreign, err := other.Issue("user-123")
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"jti": "x",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"malformed":       "not.a.token",
		"wrong signature": foreign,
		"expired":         expired,
		"no expiry":       noExpiry,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(ctx, token)
			assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
		})
	}
}

func TestIssuer_RevokeWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	issuer := NewIssuer(testSecret, time.Hour, memstore.New().Revocations())

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)
	sess, err := issuer.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(ctx, sess))

	_, err = issuer.Verify(ctx, token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	fresh, err := issuer.Issue("user-123")
	require.NoError(t, err)
	_, err = issuer.Verify(ctx, fresh)
	assert.NoError(t, err, "other tokens of the same user stay valid")
}

func TestIssuer_RevokeWithRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	issuer := NewIssuer(testSecret, time.Hour, session.NewRevocationRedisRepo(client, "test:revoked", time.Second))

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)
	sess, err := issuer.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(ctx, sess))
	assert.True(t, mr.Exists("test:revoked:"+sess.TokenID))

	_, err = issuer.Verify(ctx, token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	mr.FastForward(2 * time.Hour)
	assert.False(t, mr.Exists("test:revoked:"+sess.TokenID))
}

func TestIssuer_RevocationStoreFailure(t *testing.T) {
	ctx := context.Background()
	issuer := NewIssuer(testSecret, time.Hour, failingRevocations{})

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = issuer.Verify(ctx, token)
	assert.True(t, errors.Is(err, apperr.ErrInternal))

	err = issuer.Revoke(ctx, session.Session{UserID: "user-123", TokenID: "jti", ExpiresAt: time.Now().Add(time.Hour)})
	assert.True(t, errors.Is(err, apperr.ErrInternal))
}
