package userrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/otdr-app/trip-tracker-api/internal/adapters/postgres"
	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

type userDoc struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Friends []string `json:"friends"`
}

// Repo is a Postgres implementation of userrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, u domain.User) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	doc, err := encode(u)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO users (id, doc) VALUES ($1, $2)
	`, string(u.ID), doc)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return userrepo.ErrConflict
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id domain.UserID) (domain.User, error) {
	if r.pool == nil {
		return domain.User{}, errors.New("nil postgres pool")
	}
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT doc FROM users WHERE id = $1
	`, string(id)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, userrepo.ErrNotFound
		}
		return domain.User{}, err
	}
	return decode(id, raw)
}

func (r *Repo) Exists(ctx context.Context, id domain.UserID) (bool, error) {
	if r.pool == nil {
		return false, errors.New("nil postgres pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, string(id)).Scan(&exists)
	return exists, err
}

func (r *Repo) Find(ctx context.Context, sel userrepo.Selector) ([]domain.User, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}

	where := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if sel.Name != "" {
		args = append(args, sel.Name)
		where = append(where, "doc->>'name' = $"+strconv.Itoa(len(args)))
	}
	if sel.Email != "" {
		args = append(args, sel.Email)
		where = append(where, "doc->>'email' = $"+strconv.Itoa(len(args)))
	}

	q := `SELECT id, doc FROM users`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		u, err := decode(domain.UserID(id), raw)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func encode(u domain.User) ([]byte, error) {
	friends := make([]string, 0, len(u.Friends))
	for _, f := range u.Friends {
		friends = append(friends, string(f))
	}
	return json.Marshal(userDoc{
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Friends: friends,
	})
}

func decode(id domain.UserID, raw []byte) (domain.User, error) {
	var d userDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.User{}, fmt.Errorf("decode user row %q: %w", id, err)
	}
	friends := make([]domain.UserID, 0, len(d.Friends))
	for _, f := range d.Friends {
		friends = append(friends, domain.UserID(f))
	}
	return domain.User{
		ID:      id,
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Friends: friends,
	}, nil
}
