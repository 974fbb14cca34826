package config

import "testing"

func TestCanonicalizeAcceptsDashAndUnderscoreForms(t *testing.T) {
	cases := []string{"max-retries", "max_retries", "default_max_retries"}
	for _, in := range cases {
		got, ok := Canonicalize(in)
		if !ok {
			t.Fatalf("Canonicalize(%q): expected ok", in)
		}
		if got != KeyMaxRetries {
			t.Fatalf("Canonicalize(%q) = %q, want %q", in, got, KeyMaxRetries)
		}
	}
}

func TestCanonicalizeRejectsUnknownKey(t *testing.T) {
	if _, ok := Canonicalize("totally-unknown"); ok {
		t.Fatalf("expected Canonicalize to reject an unrecognized key")
	}
}
