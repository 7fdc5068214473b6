// verification.go
// Package mosip cross-verifies user-submitted identity claims against
// fields extracted from scanned documents by an external recognition
// service. For each semantic field it computes a fuzzy 0-100 match score
// that tolerates OCR noise and formatting variance, and classifies the
// result as MATCH, PARTIAL, MISMATCH or MISSING.
//
// This root package is the simple entry point; pkg/verification exposes the
// same engine with the full set of wiring options, and pkg/prereg handles
// the downstream pre-registration payload.
package mosip

import (
	"os"

	"github.com/baditaflorin/l"

	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/logger"
	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/normalizer"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/similarity"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/validate"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/verify"
	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

// Re-exported data model, so callers of the root API do not need to import
// the internal domain package.
type (
	FieldKey              = domain.FieldKey
	MatchStatus           = domain.MatchStatus
	ConfidenceTier        = domain.ConfidenceTier
	ExtractedField        = domain.ExtractedField
	QualityMetrics        = domain.QualityMetrics
	ExtractionRecord      = domain.ExtractionRecord
	RecognitionResult     = domain.RecognitionResult
	ClaimRecord           = domain.ClaimRecord
	FieldComparisonResult = domain.FieldComparisonResult
)

const (
	FieldName     = domain.FieldName
	FieldAge      = domain.FieldAge
	FieldGender   = domain.FieldGender
	FieldAddress  = domain.FieldAddress
	FieldIDNumber = domain.FieldIDNumber
	FieldEmail    = domain.FieldEmail
	FieldPhone    = domain.FieldPhone

	StatusMatch    = domain.StatusMatch
	StatusPartial  = domain.StatusPartial
	StatusMismatch = domain.StatusMismatch
	StatusMissing  = domain.StatusMissing

	TierHigh   = domain.TierHigh
	TierMedium = domain.TierMedium
	TierLow    = domain.TierLow
)

// CanonicalFields is the fixed, ordered field list shared by the comparer
// and the validator.
var CanonicalFields = domain.CanonicalFields

// TierFor buckets a recognition confidence into High/Medium/Low.
func TierFor(confidence float64) ConfidenceTier {
	return domain.TierFor(confidence)
}

// Config holds configuration options for the verifier.
type Config struct {
	// Logger for tracing comparison steps.
	Logger l.Logger
}

// Option defines a functional option for configuring the verifier.
type Option func(*Config)

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = lg
	}
}

// FieldVerification compares claim records against extraction records using
// the default normalizer and the production thresholds.
type FieldVerification struct {
	engine *verify.Engine
	scorer *similarity.Scorer
	logger ports.Logger
}

// New creates a new FieldVerification with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) *FieldVerification {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var log ports.Logger
	if cfg.Logger != nil {
		log = logger.FromExisting(cfg.Logger)
	} else {
		lg, err := l.NewStandardFactory().CreateLogger(l.Config{
			Output:      os.Stdout,
			JsonFormat:  false,
			AsyncWrite:  true,
			BufferSize:  1024 * 1024,      // 1MB buffer
			MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
			MaxBackups:  5,
			AddSource:   true,
			Metrics:     true,
		})
		if err != nil {
			panic(err)
		}
		log = logger.FromExisting(lg)
	}

	norm := normalizer.NewDefaultNormalizer()
	scorer, err := similarity.NewScorer(similarity.DefaultScorerConfig(), log, norm)
	if err != nil {
		// Default config is statically valid.
		panic(err)
	}
	engine, err := verify.NewEngine(verify.DefaultEngineConfig(), log, scorer)
	if err != nil {
		panic(err)
	}

	return &FieldVerification{
		engine: engine,
		scorer: scorer,
		logger: log,
	}
}

// CompareData verifies a claim against an extraction and returns one result
// per canonical field key, in canonical order.
func (fv *FieldVerification) CompareData(claim ClaimRecord, extraction ExtractionRecord) []FieldComparisonResult {
	return fv.engine.Compare(claim, extraction)
}

// Similarity computes the 0-100 fuzzy similarity between two raw values.
func (fv *FieldVerification) Similarity(claimed, extracted string) int {
	return fv.scorer.Score(claimed, extracted)
}

// ValidateField applies the structural rule for a field key. It returns nil
// for valid or blank values, or the advisory error otherwise.
func ValidateField(key FieldKey, value string) error {
	return validate.Field(key, value)
}
