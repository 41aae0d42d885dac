package auth

import (
	"context"
	"fmt"
	"time"

	"bookreview/internal/apperr"
	"bookreview/internal/platform/crypto"
	"bookreview/internal/session"
)

// ErrInvalidToken covers malformed, expired, wrongly signed and revoked
// tokens alike.
var ErrInvalidToken = apperr.New(apperr.ErrUnauthenticated, "Invalid or expired token")

// Issuer signs session tokens and checks presented ones against the
// revocation list.
type Issuer struct {
	secret      string
	ttl         time.Duration
	revocations session.Revocations
}

func NewIssuer(secret string, ttl time.Duration, revocations session.Revocations) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, revocations: revocations}
}

// Issue returns a signed token whose subject is userID.
func (i *Issuer) Issue(userID string) (string, error) {
	token, _, err := crypto.GenerateToken(i.secret, userID, i.ttl)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("sign token: %w", err))
	}
	return token, nil
}

// Verify implements httpx.TokenVerifier.
func (i *Issuer) Verify(ctx context.Context, token string) (session.Session, error) {
	claims, err := crypto.ParseToken(i.secret, token)
	if err != nil {
		return session.Session{}, ErrInvalidToken
	}

	revoked, err := i.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return session.Session{}, apperr.Internal(fmt.Errorf("check revocation: %w", err))
	}
	if revoked {
		return session.Session{}, ErrInvalidToken
	}

	return session.Session{
		UserID:    claims.Sub,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke puts the session's token on the revocation list until it expires.
func (i *Issuer) Revoke(ctx context.Context, sess session.Session) error {
	if sess.TokenID == "" {
		return ErrInvalidToken
	}
	if err := i.revocations.Revoke(ctx, sess.TokenID, sess.UserID, sess.ExpiresAt); err != nil {
		return apperr.Internal(fmt.Errorf("revoke token: %w", err))
	}
	return nil
}
