package httpx

import (
	"context"
	"net/http"
	"strings"

	"bookreview/internal/apperr"
	"bookreview/internal/session"
)

// TokenVerifier turns a bearer token into a session. Bad, expired or
// revoked tokens must fail with an apperr.ErrUnauthenticated error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (session.Session, error)
}

type userHolder struct {
	userID string
}

type userHolderKey struct{}

func contextWithUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, userHolderKey{}, h)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(authHeader[len(prefix):])
	return token, token != ""
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the verified session in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication token missing", nil)
				return
			}

			sess, err := verifier.Verify(r.Context(), token)
			if err != nil {
				WriteError(w, r, err)
				return
			}
			if sess.UserID == "" {
				WriteError(w, r, apperr.New(apperr.ErrUnauthenticated, "Invalid or expired token"))
				return
			}

			if h, ok := r.Context().Value(userHolderKey{}).(*userHolder); ok {
				h.userID = sess.UserID
			}
			ctx := session.NewContext(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
