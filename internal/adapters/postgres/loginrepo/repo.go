package loginrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/otdr-app/trip-tracker-api/internal/adapters/postgres"
	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/loginrepo"
)

// Repo is a Postgres implementation of loginrepo.Repository.
// Passwords are opaque strings at this layer; they go into their own column
// rather than the doc body so they never leak through document queries.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, l domain.Login) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO logins (id, password) VALUES ($1, $2)
	`, string(l.ID), l.Password)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return loginrepo.ErrConflict
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id domain.UserID) (domain.Login, error) {
	if r.pool == nil {
		return domain.Login{}, errors.New("nil postgres pool")
	}
	var password string
	err := r.pool.QueryRow(ctx, `
		SELECT password FROM logins WHERE id = $1
	`, string(id)).Scan(&password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Login{}, loginrepo.ErrNotFound
		}
		return domain.Login{}, err
	}
	return domain.Login{ID: id, Password: password}, nil
}
