package loginrepo

import (
	"context"
	"errors"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb"
	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/loginrepo"
)

// Repo is a document-store implementation of loginrepo.Repository.
type Repo struct {
	client     *couchdb.Client
	collection string
}

func NewRepo(client *couchdb.Client, collection string) *Repo {
	return &Repo{client: client, collection: collection}
}

func (r *Repo) Create(ctx context.Context, l domain.Login) error {
	return mapErr(r.client.Put(ctx, r.collection, string(l.ID), couchdb.EncodeLogin(l), ""))
}

func (r *Repo) Get(ctx context.Context, id domain.UserID) (domain.Login, error) {
	body, err := r.client.Get(ctx, r.collection, string(id))
	if err != nil {
		return domain.Login{}, mapErr(err)
	}
	return couchdb.DecodeLogin(body)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, couchdb.ErrNotFound):
		return loginrepo.ErrNotFound
	case errors.Is(err, couchdb.ErrConflict):
		return loginrepo.ErrConflict
	}
	return err
}
