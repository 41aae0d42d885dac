package server

import (
	"context"
	"net/http"
	"time"

	"bookreview/internal/auth"
	"bookreview/internal/book"
	"bookreview/internal/httpx"
	"bookreview/internal/review"
	"bookreview/internal/user"
)

type routeDeps struct {
	auth     *auth.HTTPHandler
	users    *user.HTTPHandler
	books    *book.HTTPHandler
	reviews  *review.HTTPHandler
	verifier httpx.TokenVerifier
	health   Pinger
}

func routes(d routeDeps) *http.ServeMux {
	router := http.NewServeMux()
	protected := httpx.AuthMiddleware(d.verifier)
	protect := func(h http.HandlerFunc) http.Handler {
		return protected(h)
	}

	router.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONSuccess(w, r, map[string]string{"status": "ok"}, nil)
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.health.Ping(ctx); err != nil {
			httpx.JSONError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Store not ready", nil)
			return
		}
		httpx.JSONSuccess(w, r, map[string]string{"status": "ready"}, nil)
	})

	router.HandleFunc("POST /api/auth/signup", d.auth.Signup)
	router.HandleFunc("POST /api/auth/login", d.auth.Login)
	router.Handle("POST /api/auth/logout", protect(d.auth.Logout))
	router.Handle("GET /api/auth/me", protect(d.users.Me))

	router.HandleFunc("GET /api/books", d.books.List)
	router.Handle("POST /api/books", protect(d.books.Create))
	router.HandleFunc("GET /api/books/{id}", d.books.Get)
	router.Handle("PUT /api/books/{id}", protect(d.books.Update))
	router.Handle("DELETE /api/books/{id}", protect(d.books.Delete))

	router.Handle("POST /api/reviews", protect(d.reviews.Create))
	router.Handle("PUT /api/reviews/{id}", protect(d.reviews.Update))
	router.Handle("DELETE /api/reviews/{id}", protect(d.reviews.Delete))

	return router
}
