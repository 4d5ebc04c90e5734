// Package couchdb talks to a CouchDB-style document store over HTTP.
//
// Documents live at {collection}/{id}. Every replacing write is conditioned
// on the document's current revision, carried in the If-Match header; the
// store answers 409 when the stored revision no longer matches, which is how
// concurrent modification surfaces.
package couchdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
)

var (
	// ErrNotFound means the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrConflict means a conditional write's precondition no longer matches
	// the stored revision, or a create hit an existing document.
	ErrConflict = errors.New("document write conflict")
)

// UpstreamError reports a store response outside the expected set for the
// operation attempted. The store's diagnostic text is carried verbatim.
type UpstreamError struct {
	Status     int
	Collection string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("store returned %d for %s: %s", e.Status, e.Collection, e.Body)
}

// Client issues the primitive document operations. It is stateless and safe
// for concurrent use.
type Client struct {
	http *resty.Client
}

// NewClient builds a client against baseURL (e.g. "http://couch:5984").
// A zero timeout leaves requests unbounded; callers normally pass the
// configured store timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	return &Client{http: rc}
}

// Exists probes a document without transferring the body.
// Any status other than 200 means "does not exist" for the caller.
func (c *Client) Exists(ctx context.Context, collection, id string) (bool, error) {
	resp, err := c.http.R().SetContext(ctx).Head(docPath(collection, id))
	if err != nil {
		return false, fmt.Errorf("head %s/%s: %w", collection, id, err)
	}
	return resp.StatusCode() == http.StatusOK, nil
}

// Get fetches the document's current JSON value.
func (c *Client) Get(ctx context.Context, collection, id string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(docPath(collection, id))
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return resp.Body(), nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, upstream(resp, collection)
	}
}

// GetRevision fetches only the concurrency token for the document. It is a
// fresh read on purpose: callers take it immediately before a conditional
// write, and staleness after this call is what the write's precondition
// detects.
func (c *Client) GetRevision(ctx context.Context, collection, id string) (domain.Revision, error) {
	body, err := c.Get(ctx, collection, id)
	if err != nil {
		return "", err
	}
	var doc struct {
		Rev string `json:"_rev"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("decode revision of %s/%s: %w", collection, id, err)
	}
	if doc.Rev == "" {
		return "", fmt.Errorf("document %s/%s carries no revision", collection, id)
	}
	return domain.Revision(doc.Rev), nil
}

// Put writes the document. With an empty rev it is an unconditional create
// (the store rejects an existing id with 409). With a rev it replaces the
// document only if the stored revision still matches.
func (c *Client) Put(ctx context.Context, collection, id string, doc any, rev domain.Revision) error {
	req := c.http.R().SetContext(ctx).SetBody(doc)
	if rev != "" {
		req.SetHeader("If-Match", string(rev))
	}
	resp, err := req.Put(docPath(collection, id))
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return upstream(resp, collection)
	}
}

// Find posts a field-equality selector to {collection}/_find and returns the
// matching documents in store order, unwrapped from the docs envelope.
// Pass an empty selector to match everything.
func (c *Client) Find(ctx context.Context, collection string, selector map[string]any) ([]json.RawMessage, error) {
	if selector == nil {
		selector = map[string]any{}
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"selector": selector}).
		Post(docPath(collection, "_find"))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, upstream(resp, collection)
	}
	var envelope struct {
		Docs []json.RawMessage `json:"docs"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("decode find envelope for %s: %w", collection, err)
	}
	return envelope.Docs, nil
}

func docPath(collection, id string) string {
	return "/" + collection + "/" + id
}

func upstream(resp *resty.Response, collection string) error {
	return &UpstreamError{
		Status:     resp.StatusCode(),
		Collection: collection,
		Body:       strings.TrimSpace(string(resp.Body())),
	}
}
