package userrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

// Repo is an in-memory implementation of userrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.UserID]domain.User
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.UserID]domain.User)}
}

func (r *Repo) Create(ctx context.Context, u domain.User) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; ok {
		return userrepo.ErrConflict
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *Repo) Get(ctx context.Context, id domain.UserID) (domain.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *Repo) Exists(ctx context.Context, id domain.UserID) (bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *Repo) Find(ctx context.Context, sel userrepo.Selector) ([]domain.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0)
	for _, u := range r.byID {
		if sel.Name != "" && u.Name != sel.Name {
			continue
		}
		if sel.Email != "" && u.Email != sel.Email {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneUser(u domain.User) domain.User {
	cp := u
	if u.Friends != nil {
		cp.Friends = append([]domain.UserID(nil), u.Friends...)
	}
	return cp
}
