package memstore

import (
	"context"

	"bookreview/internal/user"
)

// UserRepo implements user.Repository.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emails[u.Email]; taken {
		return user.ErrEmailTaken
	}
	u.ID, _ = r.s.nextID()
	u.CreatedAt = r.s.now()
	r.s.users[u.ID] = *u
	r.s.emails[u.Email] = u.ID
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
