package userrepo

import (
	"context"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
)

// Selector filters Find results by field equality.
// A zero-valued field is unconstrained.
type Selector struct {
	Name  string
	Email string
}

// Repository provides access to persisted users.
//
// Every mutation of an existing document is conditioned on the revision the
// caller last observed; see triprepo.Repository for the conditional-write
// contract.
type Repository interface {
	// Create stores a new user. Fails with ErrConflict if a document
	// already exists at that id.
	Create(ctx context.Context, u domain.User) error

	Get(ctx context.Context, id domain.UserID) (domain.User, error)

	// Exists is a body-less existence probe.
	Exists(ctx context.Context, id domain.UserID) (bool, error)

	// Find returns users matching the selector in store order.
	Find(ctx context.Context, sel Selector) ([]domain.User, error)
}
