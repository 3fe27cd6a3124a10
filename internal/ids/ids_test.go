package ids

import (
	"testing"
	"time"
)

func TestNextIsUniqueAndIncreasing(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g := New(func() time.Time { return fixed })

	prev := ""
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := g.Next()
		if seen[id] {
			t.Fatalf("duplicate id %s at %d", id, i)
		}
		seen[id] = true
		if id <= prev {
			t.Fatalf("id %s not greater than previous %s", id, prev)
		}
		prev = id
	}
}

func TestNextUsesWallClockByDefault(t *testing.T) {
	g := New(nil)
	if len(g.Next()) != 26 {
		t.Error("expected 26-char ULID")
	}
}
