package domain

// Trip is the domain representation of a group trip.
//
// ParticipantIDs and ReturnedIDs are set-semantic: membership is what matters,
// ids never repeat. They are kept as slices because that is the wire shape and
// it keeps ordering deterministic. ReturnedIDs is always a subset of
// ParticipantIDs; every mutation helper below preserves that.
type Trip struct {
	ID   TripID
	Name string

	// Start and End are timestamp strings as supplied by the client.
	// The core never interprets them.
	Start string
	End   string

	CreatorID UserID

	ParticipantIDs []UserID
	ReturnedIDs    []UserID
}

// HasParticipant reports whether id is a participant of the trip.
func (t Trip) HasParticipant(id UserID) bool {
	return containsID(t.ParticipantIDs, id)
}

// HasReturned reports whether id is marked returned.
func (t Trip) HasReturned(id UserID) bool {
	return containsID(t.ReturnedIDs, id)
}

// WithParticipant returns a copy of the trip with id added to ParticipantIDs.
// Adding an existing participant is a no-op.
func (t Trip) WithParticipant(id UserID) Trip {
	cp := t.clone()
	cp.ParticipantIDs = addID(cp.ParticipantIDs, id)
	return cp
}

// WithoutParticipant returns a copy of the trip with id removed from
// ParticipantIDs. The id is also removed from ReturnedIDs so the subset
// invariant survives the departure.
func (t Trip) WithoutParticipant(id UserID) Trip {
	cp := t.clone()
	cp.ParticipantIDs = removeID(cp.ParticipantIDs, id)
	cp.ReturnedIDs = removeID(cp.ReturnedIDs, id)
	return cp
}

// WithReturned returns a copy of the trip with id marked returned.
// The caller must ensure id is a participant.
func (t Trip) WithReturned(id UserID) Trip {
	cp := t.clone()
	cp.ReturnedIDs = addID(cp.ReturnedIDs, id)
	return cp
}

// WithoutReturned returns a copy of the trip with id no longer marked
// returned (i.e. unaccounted for).
func (t Trip) WithoutReturned(id UserID) Trip {
	cp := t.clone()
	cp.ReturnedIDs = removeID(cp.ReturnedIDs, id)
	return cp
}

// Equal reports whether two trips are identical field-for-field, including
// membership order. Mutation call sites use it to detect no-op writes.
func (t Trip) Equal(o Trip) bool {
	if t.ID != o.ID || t.Name != o.Name || t.Start != o.Start || t.End != o.End || t.CreatorID != o.CreatorID {
		return false
	}
	return equalIDs(t.ParticipantIDs, o.ParticipantIDs) && equalIDs(t.ReturnedIDs, o.ReturnedIDs)
}

func (t Trip) clone() Trip {
	cp := t
	cp.ParticipantIDs = append([]UserID(nil), t.ParticipantIDs...)
	cp.ReturnedIDs = append([]UserID(nil), t.ReturnedIDs...)
	return cp
}

func containsID(ids []UserID, id UserID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func addID(ids []UserID, id UserID) []UserID {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []UserID, id UserID) []UserID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func equalIDs(a, b []UserID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
