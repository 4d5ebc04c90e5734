// Package ids supplies random opaque identifiers for newly created trips.
package ids

import (
	"strings"

	"github.com/google/uuid"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
)

// NewTripID returns a random 32-character lowercase hex identifier.
func NewTripID() domain.TripID {
	return domain.TripID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
