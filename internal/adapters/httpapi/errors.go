package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb"
	"github.com/otdr-app/trip-tracker-api/internal/app/trips"
	"github.com/otdr-app/trip-tracker-api/internal/app/users"
)

type errorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	body := errorResponse{Error: errorBody{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: middleware.GetReqID(r.Context()),
	}}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeAppError maps service and adapter errors onto the response taxonomy.
// The four kinds stay distinguishable: callers deciding whether to retry need
// to tell a 409 apart from everything else.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var tripErr *trips.Error
	if errors.As(err, &tripErr) {
		writeError(w, r, tripErr.Status, tripErr.Code, tripErr.Message, tripErr.Details)
		return
	}
	var userErr *users.Error
	if errors.As(err, &userErr) {
		writeError(w, r, userErr.Status, userErr.Code, userErr.Message, userErr.Details)
		return
	}
	var upstream *couchdb.UpstreamError
	if errors.As(err, &upstream) {
		writeError(w, r, http.StatusBadGateway, "UPSTREAM_FAILURE", "document store error", map[string]any{
			"status":     upstream.Status,
			"collection": upstream.Collection,
			"diagnostic": upstream.Body,
		})
		return
	}
	writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
