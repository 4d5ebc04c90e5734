package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otdr-app/trip-tracker-api/internal/app/trips"
	"github.com/otdr-app/trip-tracker-api/internal/app/users"
	"github.com/otdr-app/trip-tracker-api/internal/domain"
)

// Server holds the application services the HTTP handlers delegate to.
type Server struct {
	Users *users.Service
	Trips *trips.Service
}

func NewServer(usersSvc *users.Service, tripsSvc *trips.Service) *Server {
	return &Server{Users: usersSvc, Trips: tripsSvc}
}

// Response DTOs. These are the external shapes; the store document shapes
// live in the couchdb adapter and are not exposed here.

type userResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone,omitempty"`
	Friends []string `json:"friends"`
}

type tripResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	CreatorID      string   `json:"creatorId"`
	ParticipantIDs []string `json:"participantIds"`
	ReturnedIDs    []string `json:"returnedIds"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:      string(u.ID),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Friends: idsToStrings(u.Friends),
	}
}

func toTripResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:             string(t.ID),
		Name:           t.Name,
		Start:          t.Start,
		End:            t.End,
		CreatorID:      string(t.CreatorID),
		ParticipantIDs: idsToStrings(t.ParticipantIDs),
		ReturnedIDs:    idsToStrings(t.ReturnedIDs),
	}
}

func idsToStrings(ids []domain.UserID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

// Request DTOs.

type createUserRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type createTripRequest struct {
	Name           string   `json:"name"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	CreatorID      string   `json:"creatorId"`
	ParticipantIDs []string `json:"participantIds"`
}

// findRequest carries a selector envelope: absent fields match everything.
type findRequest struct {
	Selector struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		CreatorID string `json:"creatorId"`
	} `json:"selector"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "MALFORMED_BODY", "request body is not valid JSON", nil)
		return false
	}
	return true
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id := domain.UserID(chi.URLParam(r, "userID"))
	u, err := s.Users.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id := domain.TripID(chi.URLParam(r, "tripID"))
	t, err := s.Trips.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(t))
}

func (s *Server) listUserTrips(w http.ResponseWriter, r *http.Request) {
	id := domain.UserID(chi.URLParam(r, "userID"))
	found, err := s.Users.ListTripsForUser(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	out := make([]tripResponse, 0, len(found))
	for _, t := range found {
		out = append(out, toTripResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) findUsers(w http.ResponseWriter, r *http.Request) {
	var req findRequest
	if !decodeBody(w, r, &req) {
		return
	}
	found, err := s.Users.Find(r.Context(), users.FindUsersInput{
		Name:  req.Selector.Name,
		Email: req.Selector.Email,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(found))
	for _, u := range found {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) findTrips(w http.ResponseWriter, r *http.Request) {
	var req findRequest
	if !decodeBody(w, r, &req) {
		return
	}
	found, err := s.Trips.Find(r.Context(), trips.FindTripsInput{
		Name:      req.Selector.Name,
		CreatorID: domain.UserID(req.Selector.CreatorID),
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	out := make([]tripResponse, 0, len(found))
	for _, t := range found {
		out = append(out, toTripResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := s.Users.Create(r.Context(), users.CreateUserInput{
		ID:       domain.UserID(req.ID),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	participants := make([]domain.UserID, 0, len(req.ParticipantIDs))
	for _, id := range req.ParticipantIDs {
		participants = append(participants, domain.UserID(id))
	}
	t, err := s.Trips.Create(r.Context(), trips.CreateTripInput{
		Name:           req.Name,
		Start:          req.Start,
		End:            req.End,
		CreatorID:      domain.UserID(req.CreatorID),
		ParticipantIDs: participants,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTripResponse(t))
}

// mutation adapts the four membership operations to a common handler.
// Each call runs one read-modify-write cycle; a 409 means the caller should
// re-issue the request against the fresh state.
func (s *Server) mutation(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, tripID domain.TripID, userID domain.UserID) (domain.Trip, error)) {
	tripID := domain.TripID(chi.URLParam(r, "tripID"))
	userID := domain.UserID(chi.URLParam(r, "userID"))
	t, err := op(r.Context(), tripID, userID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(t))
}

func (s *Server) addParticipant(w http.ResponseWriter, r *http.Request) {
	s.mutation(w, r, s.Trips.AddParticipant)
}

func (s *Server) removeParticipant(w http.ResponseWriter, r *http.Request) {
	s.mutation(w, r, s.Trips.RemoveParticipant)
}

func (s *Server) markReturned(w http.ResponseWriter, r *http.Request) {
	s.mutation(w, r, s.Trips.MarkReturned)
}

func (s *Server) markUnaccounted(w http.ResponseWriter, r *http.Request) {
	s.mutation(w, r, s.Trips.MarkUnaccounted)
}
