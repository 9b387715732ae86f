package prefs

import (
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "preferences.json")

	p := LoadFrom(path)
	p.SetBool(KeySnapEnabled, false)
	p.SetInt(KeyPatternCount, 6)
	p.SetFloat(KeyOffsetDistance, 0.75)
	p.SetString("last_file", "a.json")
	if err := p.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	q := LoadFrom(path)
	if q.Bool(KeySnapEnabled, true) {
		t.Error("bool not persisted")
	}
	if got := q.IntWithFallback(KeyPatternCount, 0); got != 6 {
		t.Errorf("pattern count = %d, want 6", got)
	}
	if got := q.FloatWithFallback(KeyOffsetDistance, 0); got != 0.75 {
		t.Errorf("offset distance = %v, want 0.75", got)
	}
	if got := q.String("last_file"); got != "a.json" {
		t.Errorf("string = %q", got)
	}
}

func TestMissingFileUsesFallbacks(t *testing.T) {
	p := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if !p.Bool(KeySnapEnabled, true) {
		t.Error("fallback bool lost")
	}
	if got := p.IntWithFallback(KeyPatternCount, 4); got != 4 {
		t.Errorf("fallback int = %d", got)
	}
}
