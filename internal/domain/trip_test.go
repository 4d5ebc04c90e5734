package domain

import "testing"

func TestTrip_WithParticipant_Idempotent(t *testing.T) {
	tr := Trip{ID: "t1", ParticipantIDs: []UserID{"a"}}

	got := tr.WithParticipant("a")
	if len(got.ParticipantIDs) != 1 {
		t.Fatalf("participants=%v", got.ParticipantIDs)
	}
	got = got.WithParticipant("b")
	if len(got.ParticipantIDs) != 2 || !got.HasParticipant("b") {
		t.Fatalf("participants=%v", got.ParticipantIDs)
	}
	// Original value is untouched.
	if len(tr.ParticipantIDs) != 1 {
		t.Fatalf("receiver mutated: %v", tr.ParticipantIDs)
	}
}

func TestTrip_WithoutParticipant_PrunesReturned(t *testing.T) {
	tr := Trip{
		ID:             "t1",
		ParticipantIDs: []UserID{"a", "b"},
		ReturnedIDs:    []UserID{"a"},
	}

	got := tr.WithoutParticipant("a")
	if got.HasParticipant("a") {
		t.Fatalf("participants=%v", got.ParticipantIDs)
	}
	if got.HasReturned("a") {
		t.Fatalf("returned=%v", got.ReturnedIDs)
	}
	if !got.HasParticipant("b") {
		t.Fatalf("participants=%v", got.ParticipantIDs)
	}
}

func TestTrip_ReturnedStaysSubset(t *testing.T) {
	tr := Trip{ID: "t1", ParticipantIDs: []UserID{"a", "b", "c"}}

	tr = tr.WithReturned("a")
	tr = tr.WithReturned("b")
	tr = tr.WithoutReturned("a")
	tr = tr.WithoutParticipant("b")

	for _, id := range tr.ReturnedIDs {
		if !tr.HasParticipant(id) {
			t.Fatalf("returned %q is not a participant: %+v", id, tr)
		}
	}
	if tr.HasReturned("b") {
		t.Fatalf("returned=%v", tr.ReturnedIDs)
	}
}

func TestTrip_Equal(t *testing.T) {
	a := Trip{ID: "t1", Name: "Hike", ParticipantIDs: []UserID{"a"}}
	b := a.clone()
	if !a.Equal(b) {
		t.Fatalf("expected equal: %+v vs %+v", a, b)
	}
	if a.Equal(b.WithParticipant("z")) {
		t.Fatalf("expected not equal after add")
	}
}
