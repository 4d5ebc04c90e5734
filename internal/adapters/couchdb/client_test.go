package couchdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb"
	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb/couchtest"
)

func newClient(t *testing.T) (*couchdb.Client, *couchtest.Store) {
	t.Helper()
	store := couchtest.NewStore()
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)
	return couchdb.NewClient(srv.URL, 5*time.Second), store
}

func TestClient_Exists(t *testing.T) {
	t.Parallel()
	client, store := newClient(t)
	ctx := context.Background()

	store.Seed("users", "alice", map[string]any{"type": "User", "name": "Alice"})

	ok, err := client.Exists(ctx, "users", "alice")
	if err != nil || !ok {
		t.Fatalf("Exists(alice): ok=%v err=%v", ok, err)
	}
	ok, err = client.Exists(ctx, "users", "nobody")
	if err != nil || ok {
		t.Fatalf("Exists(nobody): ok=%v err=%v", ok, err)
	}
}

func TestClient_Get_NotFound(t *testing.T) {
	t.Parallel()
	client, _ := newClient(t)

	_, err := client.Get(context.Background(), "users", "nobody")
	if !errors.Is(err, couchdb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_GetRevision(t *testing.T) {
	t.Parallel()
	client, store := newClient(t)
	ctx := context.Background()

	want := store.Seed("trips", "t1", map[string]any{"type": "Trip", "name": "Hike"})

	rev, err := client.GetRevision(ctx, "trips", "t1")
	if err != nil {
		t.Fatalf("GetRevision: %v", err)
	}
	if string(rev) != want {
		t.Fatalf("rev=%q want %q", rev, want)
	}

	if _, err := client.GetRevision(ctx, "trips", "nope"); !errors.Is(err, couchdb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Put_CreateThenConflict(t *testing.T) {
	t.Parallel()
	client, _ := newClient(t)
	ctx := context.Background()

	doc := map[string]any{"type": "Login", "_id": "alice", "password": "pw"}
	if err := client.Put(ctx, "logins", "alice", doc, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Create-only semantics: same id again is a conflict.
	if err := client.Put(ctx, "logins", "alice", doc, ""); !errors.Is(err, couchdb.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestClient_Put_ConditionalWrite(t *testing.T) {
	t.Parallel()
	client, store := newClient(t)
	ctx := context.Background()

	store.Seed("trips", "t1", map[string]any{"type": "Trip", "name": "Hike"})

	rev, err := client.GetRevision(ctx, "trips", "t1")
	if err != nil {
		t.Fatalf("GetRevision: %v", err)
	}

	next := map[string]any{"type": "Trip", "_id": "t1", "name": "Hike v2"}
	if err := client.Put(ctx, "trips", "t1", next, rev); err != nil {
		t.Fatalf("conditional put: %v", err)
	}

	// The old revision is now stale; a write conditioned on it must fail and
	// leave the stored document alone.
	if err := client.Put(ctx, "trips", "t1", map[string]any{"type": "Trip", "name": "stale"}, rev); !errors.Is(err, couchdb.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	body, err := client.Get(ctx, "trips", "t1")
	if err != nil {
		t.Fatalf("Get after conflict: %v", err)
	}
	if !strings.Contains(string(body), "Hike v2") {
		t.Fatalf("stored doc changed by conflicting write: %s", body)
	}

	// Conditioned write against a missing document is not-found, not conflict.
	if err := client.Put(ctx, "trips", "gone", next, rev); !errors.Is(err, couchdb.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Find_UnwrapsEnvelope(t *testing.T) {
	t.Parallel()
	client, store := newClient(t)
	ctx := context.Background()

	store.Seed("users", "alice", map[string]any{"type": "User", "name": "Alice", "email": "a@x.com"})
	store.Seed("users", "bob", map[string]any{"type": "User", "name": "Bob", "email": "b@x.com"})

	docs, err := client.Find(ctx, "users", map[string]any{"name": "Alice"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(docs) != 1 || !strings.Contains(string(docs[0]), "a@x.com") {
		t.Fatalf("docs=%v", docs)
	}

	all, err := client.Find(ctx, "users", nil)
	if err != nil {
		t.Fatalf("Find all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(all))
	}
}

func TestClient_UnexpectedStatusCarriesDiagnostic(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"internal_server_error","reason":"broken shard"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := couchdb.NewClient(srv.URL, 5*time.Second)

	_, err := client.Get(context.Background(), "users", "alice")
	var ue *couchdb.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusInternalServerError || !strings.Contains(ue.Body, "broken shard") {
		t.Fatalf("unexpected upstream error: %+v", ue)
	}
}
