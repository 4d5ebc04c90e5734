package trips

import "github.com/otdr-app/trip-tracker-api/internal/domain"

type CreateTripInput struct {
	Name  string
	Start string
	End   string

	CreatorID      domain.UserID
	ParticipantIDs []domain.UserID
}

// FindTripsInput mirrors the trip selector: empty fields are wildcards.
type FindTripsInput struct {
	Name      string
	CreatorID domain.UserID
}
