package catalog

import (
	"reflect"
	"testing"
)

func testCatalog() *Catalog {
	return New([]Entry{
		{ID: "T4_BAG", LocalizedNames: map[string]string{"EN-US": "Bag"}},
		{ID: "T5_BAG", LocalizedNames: map[string]string{"EN-US": "Adept's Bag"}},
		{ID: "T4_CAPE", LocalizedNames: map[string]string{"EN-US": "Cape"}},
		{ID: "T4_BAG@1", LocalizedNames: map[string]string{"EN-US": "Bag"}},
		{LocalizedNames: map[string]string{"EN-US": "Nameless Relic"}},
		{ID: "ORPHAN_ID"},
	})
}

func TestResolveRanking(t *testing.T) {
	r := NewResolver(testCatalog())

	matches := r.Resolve("bag", 2)
	if len(matches) != 2 {
		t.Fatalf("Resolve returned %d matches, want 2", len(matches))
	}
	if matches[0].ID != "T4_BAG" {
		t.Errorf("matches[0].ID = %q, want %q", matches[0].ID, "T4_BAG")
	}
	if matches[0].Name != "Bag" {
		t.Errorf("matches[0].Name = %q, want %q", matches[0].Name, "Bag")
	}
	if matches[0].Distance != 0 {
		t.Errorf("matches[0].Distance = %v, want 0 for exact name match", matches[0].Distance)
	}
	// T4_BAG@1 shares the name "Bag" at distance 0 and sits earlier in the
	// dataset than any partial match, so it fills the second slot.
	if matches[1].ID != "T4_BAG@1" {
		t.Errorf("matches[1].ID = %q, want %q", matches[1].ID, "T4_BAG@1")
	}
}

func TestResolveIdentifierQuery(t *testing.T) {
	r := NewResolver(testCatalog())

	matches := r.Resolve("T5_BAG", 1)
	if len(matches) != 1 {
		t.Fatalf("Resolve returned %d matches, want 1", len(matches))
	}
	if matches[0].ID != "T5_BAG" {
		t.Errorf("matches[0].ID = %q, want %q", matches[0].ID, "T5_BAG")
	}
	if matches[0].Distance != 0 {
		t.Errorf("matches[0].Distance = %v, want 0 for exact identifier match", matches[0].Distance)
	}
}

func TestResolveProperties(t *testing.T) {
	r := NewResolver(testCatalog())

	for _, query := range []string{"bag", "adept", "zzzzqk", "T4_CAPE", "nameless"} {
		matches := r.Resolve(query, 4)

		if len(matches) > 4 {
			t.Errorf("query %q: %d matches, want at most 4", query, len(matches))
		}
		for i, m := range matches {
			if m.Distance < 0 || m.Distance > 1 {
				t.Errorf("query %q: match %d distance %v outside [0,1]", query, i, m.Distance)
			}
			if i > 0 && matches[i-1].Distance > m.Distance {
				t.Errorf("query %q: distances not non-decreasing at %d: %v > %v",
					query, i, matches[i-1].Distance, m.Distance)
			}
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver(testCatalog())

	first := r.Resolve("bag", 4)
	for i := 0; i < 10; i++ {
		if again := r.Resolve("bag", 4); !reflect.DeepEqual(first, again) {
			t.Fatalf("Resolve not deterministic: run %d gave %v, first run gave %v", i, again, first)
		}
	}
}

func TestResolveDistinctEntries(t *testing.T) {
	// "bag" is close to both the identifier and the name of T4_BAG; the
	// entry must still fill only one slot.
	r := NewResolver(New([]Entry{
		{ID: "BAG", LocalizedNames: map[string]string{"EN-US": "bag"}},
		{ID: "T4_CAPE", LocalizedNames: map[string]string{"EN-US": "Cape"}},
	}))

	matches := r.Resolve("bag", 2)
	if len(matches) != 2 {
		t.Fatalf("Resolve returned %d matches, want 2", len(matches))
	}
	if matches[0].ID == matches[1].ID {
		t.Errorf("same entry emitted twice: %v", matches)
	}
}

func TestResolveFewerEntriesThanK(t *testing.T) {
	r := NewResolver(New([]Entry{
		{ID: "T4_BAG", LocalizedNames: map[string]string{"EN-US": "Bag"}},
	}))

	matches := r.Resolve("bag", 4)
	if len(matches) != 1 {
		t.Errorf("Resolve returned %d matches, want all 1 available", len(matches))
	}
}

func TestResolveMissingFieldsScoreWorst(t *testing.T) {
	r := NewResolver(New([]Entry{
		{}, // both fields absent
		{LocalizedNames: map[string]string{"EN-US": "Nameless Relic"}},
	}))

	matches := r.Resolve("nameless relic", 2)
	if matches[0].Name != "Nameless Relic" {
		t.Errorf("matches[0].Name = %q, want %q", matches[0].Name, "Nameless Relic")
	}
	if matches[1].Distance != 1 {
		t.Errorf("matches[1].Distance = %v, want 1 for entry with no fields", matches[1].Distance)
	}
}

func TestResolveLocaleFallsBackToIdentifier(t *testing.T) {
	r := NewResolver(New([]Entry{
		{ID: "T4_TOOL", LocalizedNames: map[string]string{"DE-DE": "Werkzeug"}},
	}))

	matches := r.Resolve("werkzeug", 1)
	if matches[0].Distance != 0 {
		t.Errorf("matches[0].Distance = %v, want 0 from DE-DE locale", matches[0].Distance)
	}
	if matches[0].Name != "T4_TOOL" {
		t.Errorf("matches[0].Name = %q, want identifier fallback", matches[0].Name)
	}
}

func TestResolveDefaultK(t *testing.T) {
	r := NewResolver(testCatalog())

	if got := len(r.Resolve("bag", 0)); got != DefaultMatches {
		t.Errorf("Resolve with k=0 returned %d matches, want default %d", got, DefaultMatches)
	}
}

func TestDistanceOrderSensitive(t *testing.T) {
	// Set-overlap measures would score these as near-identical.
	if d := distance("sword", "words"); d < 0.3 {
		t.Errorf("distance(sword, words) = %v, want a poor match", d)
	}
	if d := distance("bag", "bag"); d != 0 {
		t.Errorf("distance(bag, bag) = %v, want 0", d)
	}
}
