package users

import (
	"context"
	"errors"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/loginrepo"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/triprepo"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

// Service implements user registration and lookup.
type Service struct {
	users  userrepo.Repository
	logins loginrepo.Repository
	trips  triprepo.Repository
}

func NewService(usersRepo userrepo.Repository, loginsRepo loginrepo.Repository, tripsRepo triprepo.Repository) *Service {
	return &Service{users: usersRepo, logins: loginsRepo, trips: tripsRepo}
}

// Create registers a user. The login record is written first, then the user
// record; this is an ordering guarantee, not a transaction. If the second
// write fails the login stays behind and the error is surfaced as-is — the
// protocol is fail-fast, not compensate.
func (s *Service) Create(ctx context.Context, in CreateUserInput) (domain.User, error) {
	if in.ID == "" {
		return domain.User{}, &Error{Status: 400, Code: "INVALID_ID", Message: "invalid username"}
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return domain.User{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "name, email and password must be non-empty"}
	}

	if err := s.logins.Create(ctx, domain.Login{ID: in.ID, Password: in.Password}); err != nil {
		if errors.Is(err, loginrepo.ErrConflict) {
			return domain.User{}, &Error{Status: 409, Code: "USER_EXISTS", Message: "username already taken"}
		}
		return domain.User{}, err
	}

	u := domain.User{
		ID:      in.ID,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Friends: []domain.UserID{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrConflict) {
			return domain.User{}, &Error{Status: 409, Code: "USER_EXISTS", Message: "username already taken"}
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id domain.UserID) (domain.User, error) {
	if id == "" {
		return domain.User{}, &Error{Status: 400, Code: "INVALID_ID", Message: "invalid username"}
	}
	u, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.User{}, &Error{Status: 404, Code: "USER_NOT_FOUND", Message: "user not found"}
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *Service) Find(ctx context.Context, in FindUsersInput) ([]domain.User, error) {
	return s.users.Find(ctx, userrepo.Selector{Name: in.Name, Email: in.Email})
}

// ListTripsForUser returns the trips the user participates in.
func (s *Service) ListTripsForUser(ctx context.Context, id domain.UserID) ([]domain.Trip, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.trips.Find(ctx, triprepo.Selector{ParticipantID: id})
}
