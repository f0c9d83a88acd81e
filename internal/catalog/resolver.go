package catalog

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultMatches is the number of results a resolution returns: one primary
// match plus three alternates for the suggestion list.
const DefaultMatches = 4

// Match is one ranked resolution result.
type Match struct {
	Name     string  // EN-US display name, or the identifier if absent
	ID       string  // canonical item identifier
	Distance float64 // 0 = identical, 1 = no similarity
}

// Resolver ranks catalog entries against free-text queries.
type Resolver struct {
	catalog *Catalog
}

// NewResolver creates a resolver over the given catalog.
func NewResolver(c *Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// candidate scores one field of one entry. The entry index doubles as the
// deterministic tie-break: earlier dataset entries win equal distances.
type candidate struct {
	dist  float64
	index int
}

// Resolve returns the k closest distinct entries for the query, best first.
// The query may be an identifier, a partial name, or a localized name in any
// locale. Resolution never fails: with no similarity anywhere the result is
// simply the k earliest entries at distance 1.
func (r *Resolver) Resolve(query string, k int) []Match {
	if k < 1 {
		k = DefaultMatches
	}

	q := strings.ToLower(query)
	entries := r.catalog.entries

	// Each entry contributes two candidates, one per matched field, so an
	// item is reachable through either its code or its display name.
	cands := make([]candidate, 0, 2*len(entries))
	for i, e := range entries {
		idDist := 1.0
		if e.ID != "" {
			idDist = distance(q, strings.ToLower(e.ID))
		}
		cands = append(cands, candidate{dist: idDist, index: i})

		nameDist := 1.0
		for _, name := range e.LocalizedNames {
			if d := distance(q, strings.ToLower(name)); d < nameDist {
				nameDist = d
			}
		}
		cands = append(cands, candidate{dist: nameDist, index: i})
	}

	sort.SliceStable(cands, func(a, b int) bool {
		if cands[a].dist != cands[b].dist {
			return cands[a].dist < cands[b].dist
		}
		return cands[a].index < cands[b].index
	})

	// Emit the top k, skipping repeats of an entry already emitted via its
	// other field.
	matches := make([]Match, 0, k)
	seen := make(map[int]bool, k)
	for _, c := range cands {
		if seen[c.index] {
			continue
		}
		seen[c.index] = true

		e := entries[c.index]
		matches = append(matches, Match{
			Name:     e.DisplayName(),
			ID:       e.ID,
			Distance: c.dist,
		})
		if len(matches) == k {
			break
		}
	}

	return matches
}

// distance is 1 minus the Ratcliff/Obershelp similarity ratio of the two
// strings. Order-sensitive: "sword" and "words" share letters but few
// matching blocks.
func distance(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return 1 - m.Ratio()
}
