package normalizer

import (
	"strings"
	"unicode"

	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

// DefaultNormalizer implements the canonical comparison normalization:
// lower-case, drop every rune that is neither a word rune nor whitespace,
// collapse whitespace runs to a single space and trim the ends.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// isWordRune reports whether r survives normalization. Word runes are
// Unicode letters, digits and the underscore; no transliteration is done.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Normalize canonicalizes text for comparison. It is total and idempotent:
// normalizing an already normalized string is a no-op.
func (n *DefaultNormalizer) Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		switch {
		case isWordRune(r):
			if pendingSpace && sb.Len() > 0 {
				sb.WriteRune(' ')
			}
			pendingSpace = false
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			pendingSpace = true
		}
		// Punctuation and symbols are dropped outright, not turned into
		// spaces, so "O'Neil" normalizes to "oneil".
	}
	return sb.String()
}
