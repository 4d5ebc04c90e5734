package couchdb

import (
	"encoding/json"
	"fmt"

	"github.com/otdr-app/trip-tracker-api/internal/domain"
)

// Stored documents are a tagged family: the "type" field discriminates the
// entity kind, the id lives under the reserved "_id" key, and reads carry the
// revision under the reserved "_rev" key. Writes never serialize a revision;
// the precondition travels in the If-Match header instead.
const (
	KindUser     = "User"
	KindTrip     = "Trip"
	KindLogin    = "Login"
	KindLocation = "Location"
)

type UserDoc struct {
	Kind    string   `json:"type"`
	ID      string   `json:"_id"`
	Rev     string   `json:"_rev,omitempty"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Friends []string `json:"friends"`
}

type TripDoc struct {
	Kind           string   `json:"type"`
	ID             string   `json:"_id"`
	Rev            string   `json:"_rev,omitempty"`
	Name           string   `json:"name"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	CreatorID      string   `json:"creatorId"`
	ParticipantIDs []string `json:"participantIds"`
	ReturnedIDs    []string `json:"returnedIds"`
}

type LoginDoc struct {
	Kind     string `json:"type"`
	ID       string `json:"_id"`
	Rev      string `json:"_rev,omitempty"`
	Password string `json:"password"`
}

type LocationDoc struct {
	Kind      string `json:"type"`
	ID        string `json:"_id"`
	Rev       string `json:"_rev,omitempty"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

func EncodeUser(u domain.User) UserDoc {
	return UserDoc{
		Kind:    KindUser,
		ID:      string(u.ID),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Friends: fromUserIDs(u.Friends),
	}
}

func DecodeUser(b []byte) (domain.User, error) {
	var d UserDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return domain.User{}, fmt.Errorf("decode user document: %w", err)
	}
	if err := checkKind(d.Kind, KindUser, d.ID); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:      domain.UserID(d.ID),
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Friends: toUserIDs(d.Friends),
	}, nil
}

func EncodeTrip(t domain.Trip) TripDoc {
	return TripDoc{
		Kind:           KindTrip,
		ID:             string(t.ID),
		Name:           t.Name,
		Start:          t.Start,
		End:            t.End,
		CreatorID:      string(t.CreatorID),
		ParticipantIDs: fromUserIDs(t.ParticipantIDs),
		ReturnedIDs:    fromUserIDs(t.ReturnedIDs),
	}
}

func DecodeTrip(b []byte) (domain.Trip, error) {
	var d TripDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return domain.Trip{}, fmt.Errorf("decode trip document: %w", err)
	}
	if err := checkKind(d.Kind, KindTrip, d.ID); err != nil {
		return domain.Trip{}, err
	}
	return domain.Trip{
		ID:             domain.TripID(d.ID),
		Name:           d.Name,
		Start:          d.Start,
		End:            d.End,
		CreatorID:      domain.UserID(d.CreatorID),
		ParticipantIDs: toUserIDs(d.ParticipantIDs),
		ReturnedIDs:    toUserIDs(d.ReturnedIDs),
	}, nil
}

func EncodeLogin(l domain.Login) LoginDoc {
	return LoginDoc{
		Kind:     KindLogin,
		ID:       string(l.ID),
		Password: l.Password,
	}
}

func DecodeLogin(b []byte) (domain.Login, error) {
	var d LoginDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return domain.Login{}, fmt.Errorf("decode login document: %w", err)
	}
	if err := checkKind(d.Kind, KindLogin, d.ID); err != nil {
		return domain.Login{}, err
	}
	return domain.Login{ID: domain.UserID(d.ID), Password: d.Password}, nil
}

func EncodeLocation(l domain.Location) LocationDoc {
	return LocationDoc{
		Kind:      KindLocation,
		ID:        l.ID,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

func DecodeLocation(b []byte) (domain.Location, error) {
	var d LocationDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return domain.Location{}, fmt.Errorf("decode location document: %w", err)
	}
	if err := checkKind(d.Kind, KindLocation, d.ID); err != nil {
		return domain.Location{}, err
	}
	return domain.Location{ID: d.ID, Latitude: d.Latitude, Longitude: d.Longitude}, nil
}

func checkKind(got, want, id string) error {
	if got != want {
		return fmt.Errorf("document %q has type %q, want %q", id, got, want)
	}
	return nil
}

func fromUserIDs(ids []domain.UserID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

func toUserIDs(ids []string) []domain.UserID {
	out := make([]domain.UserID, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.UserID(id))
	}
	return out
}
