package trips

import (
	"context"
	"errors"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/platform/ids"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/triprepo"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

// Service implements trip creation, lookup and the participant/returned
// mutations. Every mutation runs the same protocol: read the trip, snapshot
// its revision, compute the next value, write conditioned on that revision.
// A conflicting concurrent write surfaces as 409; retrying is the caller's
// decision, never ours.
type Service struct {
	trips triprepo.Repository
	users userrepo.Repository

	newTripID func() domain.TripID
}

func NewService(tripsRepo triprepo.Repository, usersRepo userrepo.Repository) *Service {
	return &Service{
		trips:     tripsRepo,
		users:     usersRepo,
		newTripID: ids.NewTripID,
	}
}

// SetNewTripIDForTest overrides trip ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewTripIDForTest(fn func() domain.TripID) {
	if fn != nil {
		s.newTripID = fn
	}
}

func (s *Service) Create(ctx context.Context, in CreateTripInput) (domain.Trip, error) {
	if in.Name == "" {
		return domain.Trip{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid name", Details: map[string]any{"name": "must be non-empty"}}
	}
	if in.CreatorID == "" {
		return domain.Trip{}, &Error{Status: 400, Code: "INVALID_ID", Message: "invalid creatorId"}
	}
	if err := s.requireUser(ctx, in.CreatorID); err != nil {
		return domain.Trip{}, err
	}

	// Dedupe while validating each participant exists.
	participants := make([]domain.UserID, 0, len(in.ParticipantIDs))
	for _, id := range in.ParticipantIDs {
		if id == "" {
			return domain.Trip{}, &Error{Status: 400, Code: "INVALID_ID", Message: "invalid participant id"}
		}
		if err := s.requireUser(ctx, id); err != nil {
			return domain.Trip{}, err
		}
		if !containsUser(participants, id) {
			participants = append(participants, id)
		}
	}

	t := domain.Trip{
		ID:             s.newTripID(),
		Name:           in.Name,
		Start:          in.Start,
		End:            in.End,
		CreatorID:      in.CreatorID,
		ParticipantIDs: participants,
		ReturnedIDs:    []domain.UserID{},
	}
	if err := s.trips.Create(ctx, t); err != nil {
		if errors.Is(err, triprepo.ErrConflict) {
			return domain.Trip{}, &Error{Status: 409, Code: "TRIP_EXISTS", Message: "trip id already taken"}
		}
		return domain.Trip{}, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	if id == "" {
		return domain.Trip{}, &Error{Status: 400, Code: "INVALID_ID", Message: "invalid tripId"}
	}
	t, err := s.trips.Get(ctx, id)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return domain.Trip{}, &Error{Status: 404, Code: "TRIP_NOT_FOUND", Message: "trip not found"}
		}
		return domain.Trip{}, err
	}
	return t, nil
}

func (s *Service) Find(ctx context.Context, in FindTripsInput) ([]domain.Trip, error) {
	return s.trips.Find(ctx, triprepo.Selector{Name: in.Name, CreatorID: in.CreatorID})
}

// AddParticipant adds userID to the trip's participant set. Adding an
// existing participant is a no-op, not an error.
func (s *Service) AddParticipant(ctx context.Context, tripID domain.TripID, userID domain.UserID) (domain.Trip, error) {
	return s.mutate(ctx, tripID, userID, func(t domain.Trip) (domain.Trip, error) {
		return t.WithParticipant(userID), nil
	})
}

// RemoveParticipant removes userID from the participant set and, to keep
// returnedIds a subset of participantIds, from the returned set as well.
func (s *Service) RemoveParticipant(ctx context.Context, tripID domain.TripID, userID domain.UserID) (domain.Trip, error) {
	return s.mutate(ctx, tripID, userID, func(t domain.Trip) (domain.Trip, error) {
		return t.WithoutParticipant(userID), nil
	})
}

// MarkReturned records that the participant is back and accounted for.
func (s *Service) MarkReturned(ctx context.Context, tripID domain.TripID, userID domain.UserID) (domain.Trip, error) {
	return s.mutate(ctx, tripID, userID, func(t domain.Trip) (domain.Trip, error) {
		if !t.HasParticipant(userID) {
			return domain.Trip{}, notAParticipant(userID)
		}
		return t.WithReturned(userID), nil
	})
}

// MarkUnaccounted clears the participant's returned mark.
func (s *Service) MarkUnaccounted(ctx context.Context, tripID domain.TripID, userID domain.UserID) (domain.Trip, error) {
	return s.mutate(ctx, tripID, userID, func(t domain.Trip) (domain.Trip, error) {
		if !t.HasParticipant(userID) {
			return domain.Trip{}, notAParticipant(userID)
		}
		return t.WithoutReturned(userID), nil
	})
}

// mutate runs the read-modify-write protocol:
//
//	validate user -> read trip -> snapshot revision -> compute -> conditional write
//
// The returned trip is the computed value; the write is trusted to have
// applied exactly what was sent. Mutations whose computed value equals the
// current one return it without writing, so they cannot bump the revision or
// manufacture conflicts for concurrent writers.
func (s *Service) mutate(ctx context.Context, tripID domain.TripID, userID domain.UserID, compute func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	if tripID == "" {
		return domain.Trip{}, &Error{Status: 400, Code: "INVALID_ID", Message: "invalid tripId"}
	}
	if userID == "" {
		return domain.Trip{}, &Error{Status: 400, Code: "INVALID_ID", Message: "invalid userId"}
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return domain.Trip{}, err
	}

	current, err := s.Get(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}

	rev, err := s.trips.GetRevision(ctx, tripID)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return domain.Trip{}, &Error{Status: 404, Code: "TRIP_NOT_FOUND", Message: "trip not found"}
		}
		return domain.Trip{}, err
	}

	next, err := compute(current)
	if err != nil {
		return domain.Trip{}, err
	}
	if next.Equal(current) {
		return current, nil
	}

	if err := s.trips.Update(ctx, next, rev); err != nil {
		switch {
		case errors.Is(err, triprepo.ErrConflict):
			return domain.Trip{}, &Error{Status: 409, Code: "CONFLICT", Message: "trip was modified concurrently"}
		case errors.Is(err, triprepo.ErrNotFound):
			return domain.Trip{}, &Error{Status: 404, Code: "TRIP_NOT_FOUND", Message: "trip not found"}
		}
		return domain.Trip{}, err
	}
	return next, nil
}

func (s *Service) requireUser(ctx context.Context, id domain.UserID) error {
	if _, err := s.users.Get(ctx, id); err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return &Error{Status: 404, Code: "USER_NOT_FOUND", Message: "user not found", Details: map[string]any{"userId": string(id)}}
		}
		return err
	}
	return nil
}

func notAParticipant(id domain.UserID) error {
	return &Error{Status: 422, Code: "NOT_A_PARTICIPANT", Message: "user is not a participant of this trip", Details: map[string]any{"userId": string(id)}}
}

func containsUser(ids []domain.UserID, id domain.UserID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
