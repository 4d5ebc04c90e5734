package loginrepo

import (
	"context"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
)

// Repository stores login records. A login shares its id with its user and is
// written before the user record during registration (ordering, not a
// transaction).
type Repository interface {
	// Create stores a new login record. Fails with ErrConflict if one
	// already exists at that id.
	Create(ctx context.Context, l domain.Login) error

	Get(ctx context.Context, id domain.UserID) (domain.Login, error)
}
