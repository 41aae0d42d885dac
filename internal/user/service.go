package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookreview/internal/apperr"
	"bookreview/internal/platform/crypto"
	"bookreview/internal/platform/validate"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Create registers a user, hashing the password before it is stored.
func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return User{}, err
	}

	_, err := s.repo.GetByEmail(ctx, in.Email)
	if err == nil {
		return User{}, ErrEmailTaken
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return User{}, apperr.Internal(err)
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return User{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	u := &User{Name: in.Name, Email: in.Email, PasswordHash: hash}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, apperr.Internal(err)
	}
	return *u, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return User{}, apperr.Internal(err)
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, apperr.Internal(err)
	}
	return u, nil
}

// VerifyPassword reports whether plain matches the stored hash of u.
func (s *Service) VerifyPassword(u User, plain string) bool {
	return crypto.VerifyPassword(u.PasswordHash, plain)
}
