package triprepo

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
	"github.com/otdr-app/trip-tracker-api/internal/ports/out/triprepo"
)

type record struct {
	trip domain.Trip
	rev  uint64
}

// Repo is an in-memory implementation of triprepo.Repository.
// It is safe for concurrent use. Revisions are per-document counters that
// advance on every successful write, mirroring the store's token semantics.
type Repo struct {
	mu   sync.RWMutex
	byID map[domain.TripID]*record
}

func NewRepo() *Repo {
	return &Repo{byID: make(map[domain.TripID]*record)}
}

func (r *Repo) Create(ctx context.Context, t domain.Trip) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[t.ID]; ok {
		return triprepo.ErrConflict
	}
	r.byID[t.ID] = &record{trip: cloneTrip(t), rev: 1}
	return nil
}

func (r *Repo) Get(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return domain.Trip{}, triprepo.ErrNotFound
	}
	return cloneTrip(rec.trip), nil
}

func (r *Repo) GetRevision(ctx context.Context, id domain.TripID) (domain.Revision, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return "", triprepo.ErrNotFound
	}
	return revToken(rec.rev), nil
}

func (r *Repo) Update(ctx context.Context, t domain.Trip, rev domain.Revision) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[t.ID]
	if !ok {
		return triprepo.ErrNotFound
	}
	if revToken(rec.rev) != rev {
		return triprepo.ErrConflict
	}
	rec.trip = cloneTrip(t)
	rec.rev++
	return nil
}

func (r *Repo) Find(ctx context.Context, sel triprepo.Selector) ([]domain.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Trip, 0)
	for _, rec := range r.byID {
		t := rec.trip
		if sel.Name != "" && t.Name != sel.Name {
			continue
		}
		if sel.CreatorID != "" && t.CreatorID != sel.CreatorID {
			continue
		}
		if sel.ParticipantID != "" && !t.HasParticipant(sel.ParticipantID) {
			continue
		}
		out = append(out, cloneTrip(t))
	}
	sortTrips(out)
	return out, nil
}

func revToken(rev uint64) domain.Revision {
	return domain.Revision(strconv.FormatUint(rev, 10) + "-mem")
}

func cloneTrip(t domain.Trip) domain.Trip {
	cp := t
	if t.ParticipantIDs != nil {
		cp.ParticipantIDs = append([]domain.UserID(nil), t.ParticipantIDs...)
	}
	if t.ReturnedIDs != nil {
		cp.ReturnedIDs = append([]domain.UserID(nil), t.ReturnedIDs...)
	}
	return cp
}

func sortTrips(ts []domain.Trip) {
	// Deterministic order by id; the remote store has its own order, we just
	// need a stable one.
	sort.Slice(ts, func(i, j int) bool { return ts[i].ID < ts[j].ID })
}
