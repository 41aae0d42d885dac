// Package access decides who may mutate books and reviews.
package access

import "bookreview/internal/apperr"

var (
	ErrUnauthenticated = apperr.New(apperr.ErrUnauthenticated, "Authentication required")
	ErrForbidden       = apperr.New(apperr.ErrForbidden, "Not allowed")
)

// Owned is implemented by records that remember who created them.
type Owned interface {
	OwnerID() string
}

// RequireUser fails when the request carries no authenticated user.
func RequireUser(userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	return nil
}

// Authorize allows requesterID to mutate resource only if it owns it.
func Authorize(requesterID string, resource Owned) error {
	if err := RequireUser(requesterID); err != nil {
		return err
	}
	if resource.OwnerID() != requesterID {
		return ErrForbidden
	}
	return nil
}
