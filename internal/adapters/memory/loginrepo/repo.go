package loginrepo

import (
	"context"
	"sync"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/loginrepo"
)

// Repo is an in-memory implementation of loginrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.UserID]domain.Login
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.UserID]domain.Login)}
}

func (r *Repo) Create(ctx context.Context, l domain.Login) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[l.ID]; ok {
		return loginrepo.ErrConflict
	}
	r.byID[l.ID] = l
	return nil
}

func (r *Repo) Get(ctx context.Context, id domain.UserID) (domain.Login, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byID[id]
	if !ok {
		return domain.Login{}, loginrepo.ErrNotFound
	}
	return l, nil
}
