package tokens

import "testing"

func TestNewShape(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if len(tok) != Length {
		t.Errorf("Expected %d characters, got %d (%q)", Length, len(tok), tok)
	}

	for _, c := range tok {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Errorf("Expected lowercase hex, found %q in %q", c, tok)
		}
	}
}

func TestNewUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		tok, err := New()
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		if seen[tok] {
			t.Fatalf("Duplicate token after %d generations: %s", i, tok)
		}
		seen[tok] = true
	}
}
