// Package validate applies field-specific structural rules to extracted or
// claimed values. Validation is advisory: a violation flags a likely
// extraction or input error for presentation and never blocks scoring.
package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
)

// Advisory messages. The wording is part of the public behaviour and is
// matched verbatim by downstream presentation layers.
var (
	ErrInvalidEmail       = errors.New("Invalid email format")
	ErrInvalidPhone       = errors.New("Invalid phone number format")
	ErrInvalidAge         = errors.New("Invalid age (must be 1-120)")
	ErrUnrecognizedGender = errors.New("Unrecognized gender value")
)

var (
	// local@domain.tld with no whitespace and a dotted domain.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Digits, spaces, plus, dashes and parentheses, 7 to 20 characters.
	phonePattern = regexp.MustCompile(`^[\d\s+\-()]{7,20}$`)
)

var genderTerms = map[string]struct{}{
	"male":       {},
	"female":     {},
	"other":      {},
	"non-binary": {},
}

// Field checks value against the rule for key and returns the advisory
// error, or nil when the value passes. Blank values are always valid:
// validation is opt-in and only triggers once a value exists. Missing
// values are the comparison engine's concern, not the validator's.
//
// The switch is exhaustive over the canonical field enumeration so that
// every known key has deliberate validation behaviour, even where that
// behaviour is "no rule defined".
func Field(key domain.FieldKey, value string) error {
	// Rules apply to the trimmed value: surrounding whitespace is a
	// transport artifact, not part of the value.
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	switch key {
	case domain.FieldEmail:
		if !emailPattern.MatchString(value) {
			return ErrInvalidEmail
		}
	case domain.FieldPhone:
		if !phonePattern.MatchString(value) {
			return ErrInvalidPhone
		}
	case domain.FieldAge:
		age, err := strconv.Atoi(value)
		if err != nil || age <= 0 || age >= 120 {
			return ErrInvalidAge
		}
	case domain.FieldGender:
		if _, ok := genderTerms[strings.ToLower(value)]; !ok {
			return ErrUnrecognizedGender
		}
	case domain.FieldName, domain.FieldAddress, domain.FieldIDNumber:
		// Free text, no structural rule.
	}
	return nil
}

// ByName validates a value against a raw field name, tolerating the legacy
// "phoneNumber" alias used by some recognition payloads. Unknown names are
// always valid.
func ByName(name, value string) error {
	if name == "phoneNumber" {
		return Field(domain.FieldPhone, value)
	}
	return Field(domain.FieldKey(name), value)
}
