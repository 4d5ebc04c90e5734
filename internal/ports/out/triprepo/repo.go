package triprepo

import (
	"context"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
)

// Selector filters Find results by field equality.
// A zero-valued field is unconstrained. ParticipantID matches trips whose
// participant set contains the id; backends whose wire selector cannot
// express membership fall back to filtering fetched results.
type Selector struct {
	Name          string
	CreatorID     domain.UserID
	ParticipantID domain.UserID
}

// Repository provides access to persisted trips.
//
// Conditional-write contract: Update replaces the stored trip only if rev
// still matches the stored revision. A mismatch fails with ErrConflict; a
// vanished document fails with ErrNotFound. The revision passed to Update
// must come from GetRevision (a fresh read), not from a cached value —
// staleness between that read and the write is exactly what the conflict
// check detects.
type Repository interface {
	// Create stores a new trip unconditionally. Fails with ErrConflict if a
	// document already exists at that id.
	Create(ctx context.Context, t domain.Trip) error

	Get(ctx context.Context, id domain.TripID) (domain.Trip, error)

	// GetRevision returns the current concurrency token for the trip.
	GetRevision(ctx context.Context, id domain.TripID) (domain.Revision, error)

	// Update conditionally replaces the stored trip; see the contract above.
	Update(ctx context.Context, t domain.Trip, rev domain.Revision) error

	// Find returns trips matching the selector in store order.
	Find(ctx context.Context, sel Selector) ([]domain.Trip, error)
}
