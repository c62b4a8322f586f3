package joincode

import (
	"strings"
	"testing"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if len(code) != Length {
			t.Fatalf("expected length %d, got %d (%q)", Length, len(code), code)
		}
		for _, r := range code {
			if !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("code %q contains %q outside alphabet", code, r)
			}
		}
	}
}

func TestGenerateNoAmbiguousCharacters(t *testing.T) {
	for _, c := range "0O1I" {
		if strings.ContainsRune(Alphabet, c) {
			t.Errorf("alphabet must not contain ambiguous character %q", c)
		}
	}
	if len(Alphabet) != 32 {
		t.Errorf("alphabet size: expected 32, got %d", len(Alphabet))
	}
}

func TestGenerateVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		seen[code] = true
	}
	// 50 draws from a 32^8 space colliding would mean a broken source.
	if len(seen) < 50 {
		t.Errorf("expected 50 distinct codes, got %d", len(seen))
	}
}
