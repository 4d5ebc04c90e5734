package triprepo

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
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/triprepo"
)

// tripDoc is the jsonb column shape. The id lives in its own column; the
// revision counter in the revision column stands in for the store token.
type tripDoc struct {
	Name           string   `json:"name"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	CreatorID      string   `json:"creatorId"`
	ParticipantIDs []string `json:"participantIds"`
	ReturnedIDs    []string `json:"returnedIds"`
}

// Repo is a Postgres implementation of triprepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, t domain.Trip) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	doc, err := encode(t)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO trips (id, revision, doc) VALUES ($1, 1, $2)
	`, string(t.ID), doc)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return triprepo.ErrConflict
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	if r.pool == nil {
		return domain.Trip{}, errors.New("nil postgres pool")
	}
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT doc FROM trips WHERE id = $1
	`, string(id)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, triprepo.ErrNotFound
		}
		return domain.Trip{}, err
	}
	return decode(id, raw)
}

func (r *Repo) GetRevision(ctx context.Context, id domain.TripID) (domain.Revision, error) {
	if r.pool == nil {
		return "", errors.New("nil postgres pool")
	}
	var rev int64
	err := r.pool.QueryRow(ctx, `
		SELECT revision FROM trips WHERE id = $1
	`, string(id)).Scan(&rev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", triprepo.ErrNotFound
		}
		return "", err
	}
	return domain.Revision(strconv.FormatInt(rev, 10)), nil
}

func (r *Repo) Update(ctx context.Context, t domain.Trip, rev domain.Revision) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	revNum, err := strconv.ParseInt(string(rev), 10, 64)
	if err != nil {
		// A token this backend never minted cannot match the stored revision.
		return triprepo.ErrConflict
	}

	doc, err := encode(t)
	if err != nil {
		return err
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE trips SET doc = $2, revision = revision + 1
		WHERE id = $1 AND revision = $3
	`, string(t.ID), doc, revNum)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	// Zero rows: either the precondition failed or the document is gone.
	var exists bool
	if err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM trips WHERE id = $1)
	`, string(t.ID)).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return triprepo.ErrNotFound
	}
	return triprepo.ErrConflict
}

func (r *Repo) Find(ctx context.Context, sel triprepo.Selector) ([]domain.Trip, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}

	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if sel.Name != "" {
		args = append(args, sel.Name)
		where = append(where, "doc->>'name' = $"+strconv.Itoa(len(args)))
	}
	if sel.CreatorID != "" {
		args = append(args, string(sel.CreatorID))
		where = append(where, "doc->>'creatorId' = $"+strconv.Itoa(len(args)))
	}
	if sel.ParticipantID != "" {
		args = append(args, string(sel.ParticipantID))
		where = append(where, "doc->'participantIds' @> to_jsonb($"+strconv.Itoa(len(args))+"::text)")
	}

	q := `SELECT id, doc FROM trips`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Trip, 0)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		t, err := decode(domain.TripID(id), raw)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func encode(t domain.Trip) ([]byte, error) {
	return json.Marshal(tripDoc{
		Name:           t.Name,
		Start:          t.Start,
		End:            t.End,
		CreatorID:      string(t.CreatorID),
		ParticipantIDs: toStrings(t.ParticipantIDs),
		ReturnedIDs:    toStrings(t.ReturnedIDs),
	})
}

func decode(id domain.TripID, raw []byte) (domain.Trip, error) {
	var d tripDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.Trip{}, fmt.Errorf("decode trip row %q: %w", id, err)
	}
	return domain.Trip{
		ID:             id,
		Name:           d.Name,
		Start:          d.Start,
		End:            d.End,
		CreatorID:      domain.UserID(d.CreatorID),
		ParticipantIDs: toUserIDs(d.ParticipantIDs),
		ReturnedIDs:    toUserIDs(d.ReturnedIDs),
	}, nil
}

func toStrings(ids []domain.UserID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

func toUserIDs(ids []string) []domain.UserID {
	out := make([]domain.UserID, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.UserID(id))
	}
	return out
}
