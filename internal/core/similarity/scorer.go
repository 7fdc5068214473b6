// Package similarity implements the fuzzy field-similarity score used by the
// verification engine: a Levenshtein-based percentage over normalized
// strings, with a containment boost for substring-consistent pairs such as
// addresses where one side carries extra detail.
package similarity

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

// ScorerConfig holds configuration for the similarity scorer.
type ScorerConfig struct {
	// BoostFloor is the minimum score granted to substring-consistent pairs
	// that fall inside the boost window.
	BoostFloor int
	// BoostLowerBound is the exclusive lower edge of the boost window; the
	// upper edge is always an exact score of 100.
	BoostLowerBound int
}

// DefaultScorerConfig returns the default configuration. The window and the
// floor are empirical constants carried over from the production matcher;
// behaviour compatibility matters more than re-derivation here.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		BoostFloor:      85,
		BoostLowerBound: 40,
	}
}

// Validate checks if the configuration is valid.
func (c ScorerConfig) Validate() error {
	if c.BoostFloor < 0 || c.BoostFloor > 100 {
		return errors.New("boost floor must be between 0 and 100")
	}
	if c.BoostLowerBound < 0 || c.BoostLowerBound >= 100 {
		return errors.New("boost lower bound must be between 0 and 99")
	}
	if c.BoostFloor <= c.BoostLowerBound {
		return errors.New("boost floor must be greater than the boost lower bound")
	}
	return nil
}

// Scorer computes the similarity score between a claimed and an extracted
// value. It is stateless apart from its configuration and safe for
// concurrent use.
type Scorer struct {
	config     ScorerConfig
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewScorer creates a new similarity scorer.
func NewScorer(config ScorerConfig, logger ports.Logger, normalizer ports.Normalizer) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Scorer{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Score computes the similarity percentage between two raw strings.
//
// Both inputs are normalized first. Two empty normalized strings score 100
// (absence is handled by the engine's MISSING classification, not here); a
// single empty side scores 0; equal strings score 100. Otherwise the score
// is round((1 - distance/maxLen) * 100) over the unit-cost edit distance,
// raised to at least BoostFloor when it falls strictly inside the boost
// window and one normalized string contains the other.
func (s *Scorer) Score(claimed, extracted string) int {
	a := s.normalizer.Normalize(claimed)
	b := s.normalizer.Normalize(extracted)

	s.logger.Debug("Normalized values for scoring",
		"claimed", a,
		"extracted", b,
	)

	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	distance := levenshtein.ComputeDistance(a, b)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	score := int(math.Round((1 - float64(distance)/float64(maxLen)) * 100))

	// Substring containment has to be checked in both directions so the
	// boosted score stays identical regardless of argument order.
	if score > s.config.BoostLowerBound && score < 100 &&
		(strings.Contains(a, b) || strings.Contains(b, a)) {
		if score < s.config.BoostFloor {
			s.logger.Debug("Applied containment boost",
				"raw_score", score,
				"boosted_score", s.config.BoostFloor,
			)
			score = s.config.BoostFloor
		}
	}

	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return score
}

var _ ports.SimilarityScorer = (*Scorer)(nil)
