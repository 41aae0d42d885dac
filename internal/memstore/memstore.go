// Package memstore is an in-process implementation of the repositories,
// used with STORE_DRIVER=memory and by end-to-end tests. All data lives
// behind one lock so multi-step operations such as deleting a book with
// its reviews are atomic.
package memstore

import (
	"context"
	"sync"
	"time"

	"bookreview/internal/user"

	"github.com/google/uuid"
)

type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users       map[string]user.User
	emails      map[string]string
	books       map[string]*bookEntry
	reviews     map[string]*reviewEntry
	revocations map[string]time.Time
}

func New() *Store {
	return &Store{
		now:         time.Now,
		users:       make(map[string]user.User),
		emails:      make(map[string]string),
		books:       make(map[string]*bookEntry),
		reviews:     make(map[string]*reviewEntry),
		revocations: make(map[string]time.Time),
	}
}

// nextID must be called with mu held for writing.
func (s *Store) nextID() (string, int64) {
	s.seq++
	return uuid.NewString(), s.seq
}

// Ping always succeeds; it lets the readiness probe treat both stores alike.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Users() *UserRepo {
	return &UserRepo{s: s}
}

func (s *Store) Books() *BookRepo {
	return &BookRepo{s: s}
}

func (s *Store) Reviews() *ReviewRepo {
	return &ReviewRepo{s: s}
}

func (s *Store) Revocations() *RevocationRepo {
	return &RevocationRepo{s: s}
}
