package normalizer

import (
	"testing"

	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

func allNormalizers() map[string]ports.Normalizer {
	return map[string]ports.Normalizer{
		"default":   NewDefaultNormalizer(),
		"optimized": NewOptimizedNormalizer(),
		"fast":      NewFastNormalizer(),
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", ""},
		{"Already normalized", "john doe", "john doe"},
		{"Upper case with punctuation", "JOHN DOE!!", "john doe"},
		{"Punctuation dropped not spaced", "O'Neil", "oneil"},
		{"Whitespace collapsed and trimmed", "  123   Main \t St  ", "123 main st"},
		{"Address with commas", "123 Main St, Apt 4", "123 main st apt 4"},
		{"Underscore survives", "user_name", "user_name"},
		{"Phone formatting", "+1 (555) 010-0199", "1 555 0100199"},
		{"Unicode letters kept", "José GARCÍA", "josé garcía"},
		{"Only punctuation", "?!...;", ""},
		{"Only whitespace", " \t\n ", ""},
	}

	for name, n := range allNormalizers() {
		for _, tc := range tests {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				if got := n.Normalize(tc.input); got != tc.expected {
					t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
				}
			})
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"JOHN DOE!!",
		"  123 Main St, Apt 4  ",
		"Ñandú  Ötzi",
		"user_name@example.com",
		"",
	}

	for name, n := range allNormalizers() {
		for _, input := range inputs {
			once := n.Normalize(input)
			twice := n.Normalize(once)
			if once != twice {
				t.Errorf("%s: Normalize not idempotent for %q: %q != %q", name, input, once, twice)
			}
		}
	}
}

func TestNormalizersAgree(t *testing.T) {
	// The optimized and fast variants must be behaviourally identical to
	// the default implementation.
	inputs := []string{
		"The Quick BROWN Fox!",
		"  mixed   WHITESPACE\tand\nnewlines  ",
		"çğıöşü ÇĞİÖŞÜ",
		"half-ascii Ñ half-not",
		"1234567890",
		"--- ___ ---",
	}

	reference := NewDefaultNormalizer()
	for name, n := range allNormalizers() {
		for _, input := range inputs {
			want := reference.Normalize(input)
			if got := n.Normalize(input); got != want {
				t.Errorf("%s: Normalize(%q) = %q, default says %q", name, input, got, want)
			}
		}
	}
}
