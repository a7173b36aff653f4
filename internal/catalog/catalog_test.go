package catalog_test

import (
	"testing"

	"packsmith/internal/catalog"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	c := catalog.Default()

	audio, ok := c.Lookup("SPRING1")
	if !ok {
		t.Fatal("expected spring1 to resolve")
	}
	if audio.ID != "spring1" || audio.Name != "It's A Big World Outside" {
		t.Fatalf("unexpected match: %#v", audio)
	}

	if _, ok := c.Lookup("  skullcave "); !ok {
		t.Fatal("expected trimmed, case-folded id to resolve")
	}
	if _, ok := c.Lookup("definitely-custom"); ok {
		t.Fatal("unknown id must not resolve")
	}
}

func TestDefaultTableHasUniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for _, audio := range catalog.Default().All() {
		if audio.ID == "" || audio.Name == "" {
			t.Fatalf("incomplete row: %#v", audio)
		}
		key := audio.ID
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate catalog id %q", key)
		}
		seen[key] = struct{}{}
	}
}
