package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	data := `[
		{"UniqueName": "T4_BAG", "LocalizedNames": {"EN-US": "Bag", "DE-DE": "Tasche"}},
		{"UniqueName": "T5_BAG", "LocalizedNames": {"EN-US": "Adept's Bag"}},
		{"LocalizedNames": {"EN-US": "Nameless"}},
		{"UniqueName": "ORPHAN_ID"}
	]`
	path := filepath.Join(t.TempDir(), "item_data.json")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	if got := c.Entry(0).ID; got != "T4_BAG" {
		t.Errorf("Entry(0).ID = %q, want %q", got, "T4_BAG")
	}
	if got := c.Entry(0).LocalizedNames["DE-DE"]; got != "Tasche" {
		t.Errorf("Entry(0).LocalizedNames[DE-DE] = %q, want %q", got, "Tasche")
	}
	if got := c.Entry(2).ID; got != "" {
		t.Errorf("Entry(2).ID = %q, want empty for missing field", got)
	}
	if c.Entry(3).LocalizedNames != nil {
		t.Errorf("Entry(3).LocalizedNames = %v, want nil for missing field", c.Entry(3).LocalizedNames)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Load of missing file should fail")
	}
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item_data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestDisplayName(t *testing.T) {
	withLocale := Entry{ID: "T4_BAG", LocalizedNames: map[string]string{"EN-US": "Bag"}}
	if got := withLocale.DisplayName(); got != "Bag" {
		t.Errorf("DisplayName() = %q, want %q", got, "Bag")
	}

	withoutLocale := Entry{ID: "T4_BAG", LocalizedNames: map[string]string{"DE-DE": "Tasche"}}
	if got := withoutLocale.DisplayName(); got != "T4_BAG" {
		t.Errorf("DisplayName() = %q, want identifier fallback %q", got, "T4_BAG")
	}
}
