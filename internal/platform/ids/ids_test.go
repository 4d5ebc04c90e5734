package ids

import "testing"

func TestNewTripID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := string(NewTripID())
		if len(id) != 32 {
			t.Fatalf("len(%q) = %d, want 32", id, len(id))
		}
		for _, c := range id {
			if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
				t.Fatalf("non-hex character %q in %q", c, id)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
