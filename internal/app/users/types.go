package users

import "github.com/otdr-app/trip-tracker-api/internal/domain"

type CreateUserInput struct {
	ID       domain.UserID
	Name     string
	Email    string
	Phone    string
	Password string
}

// FindUsersInput mirrors the user selector: empty fields are wildcards.
type FindUsersInput struct {
	Name  string
	Email string
}
