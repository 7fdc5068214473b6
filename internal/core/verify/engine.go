// Package verify implements the comparison engine: it walks the canonical
// field list, scores each claimed value against the extracted value and
// classifies the outcome.
package verify

import (
	"errors"

	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

// EngineConfig holds the classification thresholds. They are policy
// constants, fixed per engine instance rather than per call.
type EngineConfig struct {
	// MatchThreshold is the closed lower bound for MATCH.
	MatchThreshold int
	// PartialThreshold is the closed lower bound for PARTIAL.
	PartialThreshold int
}

// DefaultEngineConfig returns the production thresholds.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MatchThreshold:   90,
		PartialThreshold: 70,
	}
}

// Validate checks if the configuration is valid.
func (c EngineConfig) Validate() error {
	if c.MatchThreshold < 0 || c.MatchThreshold > 100 {
		return errors.New("match threshold must be between 0 and 100")
	}
	if c.PartialThreshold < 0 || c.PartialThreshold > 100 {
		return errors.New("partial threshold must be between 0 and 100")
	}
	if c.PartialThreshold > c.MatchThreshold {
		return errors.New("partial threshold must not exceed the match threshold")
	}
	return nil
}

// Engine cross-verifies a claim record against an extraction record. It is
// pure computation over immutable inputs; concurrent calls need no locking.
type Engine struct {
	config EngineConfig
	logger ports.Logger
	scorer ports.SimilarityScorer
}

// NewEngine creates a new comparison engine.
func NewEngine(config EngineConfig, logger ports.Logger, scorer ports.SimilarityScorer) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		config: config,
		logger: logger,
		scorer: scorer,
	}, nil
}

// Compare produces exactly one FieldComparisonResult per canonical field
// key, in canonical order, regardless of which keys the claim or the
// extraction actually populated. Absent or malformed inputs degrade to
// empty-string comparisons; the function never fails.
func (e *Engine) Compare(claim domain.ClaimRecord, extraction domain.ExtractionRecord) []domain.FieldComparisonResult {
	results := make([]domain.FieldComparisonResult, 0, len(domain.CanonicalFields))

	for _, key := range domain.CanonicalFields {
		claimed := claim.Get(key)
		field := extraction.Lookup(key)

		// The score is computed and reported even when the extracted value
		// is empty; MISSING then overrides any score-based tier.
		score := e.scorer.Score(claimed, field.Value)
		status := e.classify(score, field.Value)

		e.logger.Debug("Compared field",
			"field", key,
			"score", score,
			"status", status,
		)

		results = append(results, domain.FieldComparisonResult{
			FieldKey:       key,
			ClaimedValue:   claimed,
			ExtractedValue: field.Value,
			MatchScore:     score,
			Status:         status,
			IsHandwritten:  field.IsHandwritten,
			Confidence:     field.Confidence,
		})
	}

	return results
}

// classify applies the classification policy in order, first match wins.
// Lower bounds are closed, mirroring domain.TierFor.
func (e *Engine) classify(score int, extracted string) domain.MatchStatus {
	switch {
	case extracted == "":
		return domain.StatusMissing
	case score >= e.config.MatchThreshold:
		return domain.StatusMatch
	case score >= e.config.PartialThreshold:
		return domain.StatusPartial
	default:
		return domain.StatusMismatch
	}
}

var _ ports.Comparer = (*Engine)(nil)
