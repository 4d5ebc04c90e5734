// Package couchtest provides an in-memory HTTP server speaking the subset of
// the CouchDB wire contract the client uses. Tests point a real Client at it
// to exercise status mapping, preconditions and the find envelope without a
// running store.
package couchtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
)

type doc struct {
	rev    int
	fields map[string]any
}

// Store is an http.Handler emulating one CouchDB node.
type Store struct {
	mu   sync.Mutex
	docs map[string]map[string]*doc // collection -> id -> doc
}

func NewStore() *Store {
	return &Store{docs: map[string]map[string]*doc{}}
}

// Seed inserts a document directly, bypassing HTTP. It returns the revision
// the document was stored under.
func (s *Store) Seed(collection, id string, fields map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := &doc{rev: 1, fields: cloneFields(fields)}
	s.coll(collection)[id] = d
	return revToken(d.rev)
}

// Rev returns the current revision token of a document, or "" if absent.
func (s *Store) Rev(collection, id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.coll(collection)[id]
	if !ok {
		return ""
	}
	return revToken(d.rev)
}

// Bump rewrites a document in place, advancing its revision. It simulates a
// concurrent writer getting in between a reader's revision snapshot and its
// conditional write.
func (s *Store) Bump(collection, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.coll(collection)[id]; ok {
		d.rev++
	}
}

func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.SplitN(strings.Trim(r.URL.Path, "/"), "/", 2)
	if len(parts) != 2 {
		http.Error(w, `{"error":"bad_request"}`, http.StatusBadRequest)
		return
	}
	collection, id := parts[0], parts[1]

	if id == "_find" && r.Method == http.MethodPost {
		s.find(w, r, collection)
		return
	}

	switch r.Method {
	case http.MethodHead:
		s.head(w, collection, id)
	case http.MethodGet:
		s.get(w, collection, id)
	case http.MethodPut:
		s.put(w, r, collection, id)
	default:
		http.Error(w, `{"error":"method_not_allowed"}`, http.StatusMethodNotAllowed)
	}
}

func (s *Store) head(w http.ResponseWriter, collection, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coll(collection)[id]; !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Store) get(w http.ResponseWriter, collection, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.coll(collection)[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not_found", "reason": "missing"})
		return
	}
	writeJSON(w, http.StatusOK, d.withRev(id))
}

func (s *Store) put(w http.ResponseWriter, r *http.Request, collection, id string) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad_request", "reason": err.Error()})
		return
	}
	delete(fields, "_rev")

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.coll(collection)[id]
	precondition := r.Header.Get("If-Match")

	switch {
	case precondition == "":
		if ok {
			writeJSON(w, http.StatusConflict, map[string]any{"error": "conflict", "reason": "Document update conflict."})
			return
		}
		s.coll(collection)[id] = &doc{rev: 1, fields: fields}
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "id": id, "rev": revToken(1)})
	case !ok:
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not_found", "reason": "missing"})
	case precondition != revToken(existing.rev):
		writeJSON(w, http.StatusConflict, map[string]any{"error": "conflict", "reason": "Document update conflict."})
	default:
		existing.fields = fields
		existing.rev++
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "id": id, "rev": revToken(existing.rev)})
	}
}

func (s *Store) find(w http.ResponseWriter, r *http.Request, collection string) {
	var req struct {
		Selector map[string]any `json:"selector"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad_request", "reason": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0)
	for id := range s.coll(collection) {
		ids = append(ids, id)
	}
	// Store-defined order: keep it deterministic by id.
	sort.Strings(ids)

	docs := make([]map[string]any, 0)
	for _, id := range ids {
		d := s.coll(collection)[id]
		if matches(d.fields, req.Selector) {
			docs = append(docs, d.withRev(id))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"docs": docs})
}

func (d *doc) withRev(id string) map[string]any {
	out := cloneFields(d.fields)
	out["_id"] = id
	out["_rev"] = revToken(d.rev)
	return out
}

func (s *Store) coll(name string) map[string]*doc {
	if s.docs[name] == nil {
		s.docs[name] = map[string]*doc{}
	}
	return s.docs[name]
}

func matches(fields, selector map[string]any) bool {
	for k, want := range selector {
		if fmt.Sprint(fields[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func revToken(rev int) string {
	return fmt.Sprintf("%d-%08x", rev, rev*2654435761)
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
