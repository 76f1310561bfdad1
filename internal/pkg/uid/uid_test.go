package uid

import (
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
)

func TestUUID(t *testing.T) {

	t.Run("GeneratesParseableUUIDs", func(t *testing.T) {
		g := NewUUID()

		id := g.Generate()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected a parseable uuid, got %q: %v", id, err)
		}
	})

	t.Run("GeneratesDistinctIDs", func(t *testing.T) {
		g := NewUUID()

		if g.Generate() == g.Generate() {
			t.Fatalf("expected distinct uuids")
		}
	})
}

func TestSnowflake(t *testing.T) {
	g, err := NewSnowflake()
	if err != nil {
		t.Fatalf("new snowflake: %v", err)
	}

	t.Run("GeneratesPositiveIDs", func(t *testing.T) {
		if id := g.Generate(); id <= 0 {
			t.Fatalf("expected a positive id, got %d", id)
		}
	})

	t.Run("GeneratesMonotonicIDs", func(t *testing.T) {
		prev := g.Generate()
		for range 100 {
			next := g.Generate()
			if next <= prev {
				t.Fatalf("expected monotonic ids, got %d after %d", next, prev)
			}
			prev = next
		}
	})
}

func TestObjectIDGenerator(t *testing.T) {
	g, err := NewObjectIDGenerator()
	if err != nil {
		t.Fatalf("new object id generator: %v", err)
	}

	t.Run("GeneratesHexIDs", func(t *testing.T) {
		id := g.Generate()

		if len(id) != 64 {
			t.Fatalf("expected 64 hex characters, got %d (%q)", len(id), id)
		}
		if _, err := hex.DecodeString(id); err != nil {
			t.Fatalf("expected hex id, got %q: %v", id, err)
		}
	})

	t.Run("GeneratesDistinctIDs", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 1000 {
			id := g.Generate()
			if _, dup := seen[id]; dup {
				t.Fatalf("expected distinct ids, got duplicate %q", id)
			}
			seen[id] = struct{}{}
		}
	})
}
