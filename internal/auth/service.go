package auth

import (
	"context"
	"errors"
	"strings"

	"bookreview/internal/apperr"
	"bookreview/internal/platform/validate"
	"bookreview/internal/session"
	"bookreview/internal/user"

	"github.com/sirupsen/logrus"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password so callers cannot tell the two apart.
var ErrInvalidCredentials = apperr.New(apperr.ErrUnauthenticated, "Invalid credentials")

// Accounts is the part of the user service that authentication needs.
type Accounts interface {
	Create(ctx context.Context, in user.CreateInput) (user.User, error)
	FindByEmail(ctx context.Context, email string) (user.User, error)
	VerifyPassword(u user.User, plain string) bool
}

type Service struct {
	accounts Accounts
	issuer   *Issuer
	log      logrus.FieldLogger
}

func NewService(accounts Accounts, issuer *Issuer, log logrus.FieldLogger) *Service {
	return &Service{accounts: accounts, issuer: issuer, log: log}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Result is returned by signup and login.
type Result struct {
	Token string      `json:"token"`
	User  user.Public `json:"user"`
}

func (s *Service) Signup(ctx context.Context, in user.CreateInput) (Result, error) {
	u, err := s.accounts.Create(ctx, in)
	if err != nil {
		return Result{}, err
	}

	token, err := s.issuer.Issue(u.ID)
	if err != nil {
		return Result{}, err
	}

	s.log.WithField("user_id", u.ID).Info("user signed up")
	return Result{Token: token, User: u.Public()}, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Result, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return Result{}, err
	}

	u, err := s.accounts.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.log.Debug("login rejected: unknown email")
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, err
	}
	if !s.accounts.VerifyPassword(u, in.Password) {
		s.log.WithField("user_id", u.ID).Debug("login rejected: wrong password")
		return Result{}, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(u.ID)
	if err != nil {
		return Result{}, err
	}

	s.log.WithField("user_id", u.ID).Info("user logged in")
	return Result{Token: token, User: u.Public()}, nil
}

// Logout revokes the token the session was established with.
func (s *Service) Logout(ctx context.Context, sess session.Session) error {
	if sess.UserID == "" {
		return apperr.New(apperr.ErrUnauthenticated, "Authentication required")
	}
	if err := s.issuer.Revoke(ctx, sess); err != nil {
		return err
	}
	s.log.WithField("user_id", sess.UserID).Info("user logged out")
	return nil
}
