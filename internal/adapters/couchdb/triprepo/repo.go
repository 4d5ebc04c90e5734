package triprepo

import (
	"context"
	"errors"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb"
	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/triprepo"
)

// Repo is a document-store implementation of triprepo.Repository.
type Repo struct {
	client     *couchdb.Client
	collection string
}

func NewRepo(client *couchdb.Client, collection string) *Repo {
	return &Repo{client: client, collection: collection}
}

func (r *Repo) Create(ctx context.Context, t domain.Trip) error {
	return mapErr(r.client.Put(ctx, r.collection, string(t.ID), couchdb.EncodeTrip(t), ""))
}

func (r *Repo) Get(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	body, err := r.client.Get(ctx, r.collection, string(id))
	if err != nil {
		return domain.Trip{}, mapErr(err)
	}
	return couchdb.DecodeTrip(body)
}

func (r *Repo) GetRevision(ctx context.Context, id domain.TripID) (domain.Revision, error) {
	rev, err := r.client.GetRevision(ctx, r.collection, string(id))
	if err != nil {
		return "", mapErr(err)
	}
	return rev, nil
}

func (r *Repo) Update(ctx context.Context, t domain.Trip, rev domain.Revision) error {
	return mapErr(r.client.Put(ctx, r.collection, string(t.ID), couchdb.EncodeTrip(t), rev))
}

func (r *Repo) Find(ctx context.Context, sel triprepo.Selector) ([]domain.Trip, error) {
	// The wire selector is field-equality only; participant membership is
	// filtered after the fetch.
	selector := map[string]any{}
	if sel.Name != "" {
		selector["name"] = sel.Name
	}
	if sel.CreatorID != "" {
		selector["creatorId"] = string(sel.CreatorID)
	}
	docs, err := r.client.Find(ctx, r.collection, selector)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Trip, 0, len(docs))
	for _, doc := range docs {
		t, err := couchdb.DecodeTrip(doc)
		if err != nil {
			return nil, err
		}
		if sel.ParticipantID != "" && !t.HasParticipant(sel.ParticipantID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, couchdb.ErrNotFound):
		return triprepo.ErrNotFound
	case errors.Is(err, couchdb.ErrConflict):
		return triprepo.ErrConflict
	}
	return err
}
