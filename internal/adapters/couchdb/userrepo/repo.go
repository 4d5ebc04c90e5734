package userrepo

import (
	"context"
	"errors"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb"
	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

// Repo is a document-store implementation of userrepo.Repository.
type Repo struct {
	client     *couchdb.Client
	collection string
}

func NewRepo(client *couchdb.Client, collection string) *Repo {
	return &Repo{client: client, collection: collection}
}

func (r *Repo) Create(ctx context.Context, u domain.User) error {
	return mapErr(r.client.Put(ctx, r.collection, string(u.ID), couchdb.EncodeUser(u), ""))
}

func (r *Repo) Get(ctx context.Context, id domain.UserID) (domain.User, error) {
	body, err := r.client.Get(ctx, r.collection, string(id))
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return couchdb.DecodeUser(body)
}

func (r *Repo) Exists(ctx context.Context, id domain.UserID) (bool, error) {
	return r.client.Exists(ctx, r.collection, string(id))
}

func (r *Repo) Find(ctx context.Context, sel userrepo.Selector) ([]domain.User, error) {
	selector := map[string]any{}
	if sel.Name != "" {
		selector["name"] = sel.Name
	}
	if sel.Email != "" {
		selector["email"] = sel.Email
	}
	docs, err := r.client.Find(ctx, r.collection, selector)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		u, err := couchdb.DecodeUser(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, couchdb.ErrNotFound):
		return userrepo.ErrNotFound
	case errors.Is(err, couchdb.ErrConflict):
		return userrepo.ErrConflict
	}
	return err
}
