// Package contracttest holds behavioral contracts every repository adapter
// must satisfy. Each adapter package runs these against its own factory so
// the memory, document-store and postgres backends stay interchangeable.
package contracttest

import (
	"context"
	"errors"
	"testing"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
	loginrepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/loginrepo"
	triprepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/triprepo"
	userrepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

type CleanupFunc = func()

type UserRepoFactory func(t *testing.T) (userrepoport.Repository, CleanupFunc)
type TripRepoFactory func(t *testing.T) (triprepoport.Repository, CleanupFunc)
type LoginRepoFactory func(t *testing.T) (loginrepoport.Repository, CleanupFunc)

func RunUserRepo(t *testing.T, newRepo UserRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	alice := domain.User{ID: "alice", Name: "Alice", Email: "a@x.com", Phone: "555", Friends: []domain.UserID{}}
	if err := repo.Create(ctx, alice); err != nil {
		t.Fatalf("Create alice: %v", err)
	}

	// Create-then-get round trip.
	got, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "alice" || got.Name != "Alice" || got.Email != "a@x.com" || got.Phone != "555" || len(got.Friends) != 0 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// Idempotent reads.
	again, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get again: %v", err)
	}
	if again.Name != got.Name || again.Email != got.Email || again.Phone != got.Phone {
		t.Fatalf("second read differs: %+v vs %+v", again, got)
	}

	// Create-only semantics on an occupied id.
	if err := repo.Create(ctx, alice); !errors.Is(err, userrepoport.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if _, err := repo.Get(ctx, "nobody"); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	ok, err := repo.Exists(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("Exists(alice): ok=%v err=%v", ok, err)
	}
	ok, err = repo.Exists(ctx, "nobody")
	if err != nil || ok {
		t.Fatalf("Exists(nobody): ok=%v err=%v", ok, err)
	}

	// Find: unset fields are wildcards, set fields match exactly.
	bob := domain.User{ID: "bob", Name: "Bob", Email: "b@x.com", Phone: "666", Friends: []domain.UserID{"alice"}}
	if err := repo.Create(ctx, bob); err != nil {
		t.Fatalf("Create bob: %v", err)
	}
	all, err := repo.Find(ctx, userrepoport.Selector{})
	if err != nil {
		t.Fatalf("Find all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 users, got %d", len(all))
	}
	byEmail, err := repo.Find(ctx, userrepoport.Selector{Email: "b@x.com"})
	if err != nil {
		t.Fatalf("Find by email: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].ID != "bob" {
		t.Fatalf("unexpected result: %+v", byEmail)
	}
	none, err := repo.Find(ctx, userrepoport.Selector{Name: "Carol"})
	if err != nil {
		t.Fatalf("Find none: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty result, got %+v", none)
	}
}

func RunTripRepo(t *testing.T, newRepo TripRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	trip := domain.Trip{
		ID:             "t1",
		Name:           "Hike",
		Start:          "2024-01-01T00:00:00Z",
		End:            "2024-01-02T00:00:00Z",
		CreatorID:      "alice",
		ParticipantIDs: []domain.UserID{"alice"},
		ReturnedIDs:    []domain.UserID{},
	}
	if err := repo.Create(ctx, trip); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Equal(trip) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, trip)
	}

	if _, err := repo.Get(ctx, "nonexistent"); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetRevision(ctx, "nonexistent"); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for revision, got %v", err)
	}

	// Conditional update against the current revision succeeds.
	rev, err := repo.GetRevision(ctx, "t1")
	if err != nil {
		t.Fatalf("GetRevision: %v", err)
	}
	next := got.WithParticipant("bob")
	if err := repo.Update(ctx, next, rev); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got2, err := repo.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if !got2.HasParticipant("bob") {
		t.Fatalf("update not applied: %+v", got2)
	}

	// Conflict detection: a write conditioned on the superseded revision
	// fails and leaves the stored trip unchanged.
	stale := got.WithParticipant("mallory")
	if err := repo.Update(ctx, stale, rev); !errors.Is(err, triprepoport.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	got3, err := repo.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get after conflict: %v", err)
	}
	if got3.HasParticipant("mallory") || !got3.Equal(got2) {
		t.Fatalf("conflicting write changed the document: %+v", got3)
	}

	// Revisions advance on every successful write.
	rev2, err := repo.GetRevision(ctx, "t1")
	if err != nil {
		t.Fatalf("GetRevision: %v", err)
	}
	if rev2 == rev {
		t.Fatalf("revision did not advance: %q", rev2)
	}

	// Update of a missing document is not-found, not conflict.
	gone := trip
	gone.ID = "nonexistent"
	if err := repo.Update(ctx, gone, rev2); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Create-only semantics.
	if err := repo.Create(ctx, trip); !errors.Is(err, triprepoport.ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate create, got %v", err)
	}

	// Find selectors.
	other := domain.Trip{ID: "t2", Name: "Paddle", CreatorID: "bob", ParticipantIDs: []domain.UserID{"bob", "alice"}, ReturnedIDs: []domain.UserID{}}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create t2: %v", err)
	}
	byCreator, err := repo.Find(ctx, triprepoport.Selector{CreatorID: "bob"})
	if err != nil {
		t.Fatalf("Find by creator: %v", err)
	}
	if len(byCreator) != 1 || byCreator[0].ID != "t2" {
		t.Fatalf("unexpected result: %+v", byCreator)
	}
	byParticipant, err := repo.Find(ctx, triprepoport.Selector{ParticipantID: "alice"})
	if err != nil {
		t.Fatalf("Find by participant: %v", err)
	}
	if len(byParticipant) != 2 {
		t.Fatalf("expected both trips, got %+v", byParticipant)
	}
}

func RunLoginRepo(t *testing.T, newRepo LoginRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	if err := repo.Create(ctx, domain.Login{ID: "alice", Password: "opaque"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "alice" || got.Password != "opaque" {
		t.Fatalf("login=%+v", got)
	}
	if err := repo.Create(ctx, domain.Login{ID: "alice", Password: "other"}); !errors.Is(err, loginrepoport.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := repo.Get(ctx, "nobody"); !errors.Is(err, loginrepoport.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
