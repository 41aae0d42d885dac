// Package server assembles the services and exposes them over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"bookreview/internal/auth"
	"bookreview/internal/book"
	"bookreview/internal/config"
	"bookreview/internal/httpx"
	"bookreview/internal/rating"
	"bookreview/internal/review"
	"bookreview/internal/session"
	"bookreview/internal/user"

	"github.com/sirupsen/logrus"
)

// Pinger reports whether the primary store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Stores are the repositories for one storage backend.
type Stores struct {
	Users       user.Repository
	Books       book.Repository
	Reviews     review.Repository
	Revocations session.Revocations
	Health      Pinger
}

type Server struct {
	handler http.Handler
	limiter *httpx.RateLimitMiddleware
	log     logrus.FieldLogger
}

// New wires services over st and builds the routed, middleware-wrapped
// handler.
func New(cfg config.Config, st Stores, log logrus.FieldLogger) *Server {
	httpx.SetErrorLogger(log)

	users := user.NewService(st.Users)
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL, st.Revocations)
	authService := auth.NewService(users, issuer, log)

	aggregator := rating.NewAggregator(st.Reviews, st.Books, log)
	reviews := review.NewService(st.Reviews, st.Books, aggregator, log)
	books := book.NewService(st.Books, reviews, cfg.BooksPageSize)

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxies...)

	mux := routes(routeDeps{
		auth:     auth.NewHTTPHandler(authService),
		users:    user.NewHTTPHandler(users),
		books:    book.NewHTTPHandler(books),
		reviews:  review.NewHTTPHandler(reviews),
		verifier: issuer,
		health:   st.Health,
	})

	handler := httpx.Chain(mux,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.IsProduction()),
		httpx.CORSMiddleware(cfg.CORSOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)

	return &Server{handler: handler, limiter: limiter, log: log}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.limiter.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("starting server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
