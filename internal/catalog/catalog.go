package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCatalogUnavailable is returned when the item dataset cannot be loaded.
// The resolver cannot operate without it, so callers should treat this as
// fatal at startup.
var ErrCatalogUnavailable = errors.New("item catalog unavailable")

// LocaleENUS is the locale used for display names.
const LocaleENUS = "EN-US"

// Entry is a single item record from the dataset.
//
// Either field may be absent in the source data. A missing ID is the empty
// string and missing localized names are a nil map; both score the maximum
// distance during resolution.
type Entry struct {
	// ID is the canonical item identifier (e.g. "T4_BAG"). Identifiers
	// ending in an @N tag denote an enchantment variant and are distinct
	// entries in their own right.
	ID string `json:"UniqueName"`

	// LocalizedNames maps locale code to display name (e.g. "EN-US" -> "Bag").
	LocalizedNames map[string]string `json:"LocalizedNames"`
}

// DisplayName returns the EN-US name, falling back to the identifier when
// that locale is absent.
func (e Entry) DisplayName() string {
	if name, ok := e.LocalizedNames[LocaleENUS]; ok {
		return name
	}
	return e.ID
}

// Catalog is a read-only index over the item dataset. Entries keep their
// dataset order, which defines the tie-break during resolution.
type Catalog struct {
	entries []Entry
}

// New builds a catalog from pre-parsed entries. Intended for tests and
// callers that source the dataset themselves.
func New(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Load reads the item dataset JSON file and builds the catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCatalogUnavailable, path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrCatalogUnavailable, path, err)
	}

	return &Catalog{entries: entries}, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entry returns the entry at dataset position i.
func (c *Catalog) Entry(i int) Entry {
	return c.entries[i]
}
