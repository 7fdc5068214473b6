// Package verification is the public facade over the verification core: the
// comparison engine, the similarity scorer and the field validators, wired
// together with a configurable normalizer and logger.
package verification

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/logger"
	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/normalizer"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/similarity"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/validate"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/verify"
	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
	"github.com/Khushi-Roy-123/MOSIP/internal/warmup"
)

// Verifier cross-verifies user-submitted claims against extracted document
// fields. Construction wires the scorer and engine; every call after that is
// pure computation and safe for concurrent use.
type Verifier struct {
	engine     ports.Comparer
	scorer     ports.SimilarityScorer
	logger     ports.Logger
	normalizer ports.Normalizer
	warmed     bool
}

// Option defines a functional option for configuring a Verifier.
type Option func(*config)

type config struct {
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *config) {
		cfg.Normalizer = n
	}
}

// WithFastNormalizer selects the pooled-builder normalizer, tuned for the
// short values typical of identity fields.
func WithFastNormalizer() Option {
	return func(cfg *config) {
		factory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = factory.CreateNormalizer(normalizer.FastNormalizerType)
	}
}

// WithOptimizedNormalizer selects the byte-pooled normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *config) {
		factory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = factory.CreateNormalizer(normalizer.OptimizedNormalizerType)
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(wc warmup.Config) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// New creates a Verifier with the provided functional options.
func New(opts ...Option) (*Verifier, error) {
	cfg := &config{
		WarmUpConfig: warmup.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}

	scorer, err := similarity.NewScorer(similarity.DefaultScorerConfig(), cfg.Logger, cfg.Normalizer)
	if err != nil {
		return nil, err
	}
	engine, err := verify.NewEngine(verify.DefaultEngineConfig(), cfg.Logger, scorer)
	if err != nil {
		return nil, err
	}

	v := &Verifier{
		engine:     engine,
		scorer:     scorer,
		logger:     cfg.Logger,
		normalizer: cfg.Normalizer,
	}

	if cfg.WarmUp {
		v.WarmUp(context.Background(), cfg.WarmUpConfig)
	}
	return v, nil
}

// Compare produces one FieldComparisonResult per canonical field key, in
// canonical order.
func (v *Verifier) Compare(claim domain.ClaimRecord, extraction domain.ExtractionRecord) []domain.FieldComparisonResult {
	return v.engine.Compare(claim, extraction)
}

// Similarity computes the 0-100 similarity score between two raw strings.
func (v *Verifier) Similarity(claimed, extracted string) int {
	return v.scorer.Score(claimed, extracted)
}

// ValidateField applies the structural rule for a field key and returns the
// advisory error, or nil.
func (v *Verifier) ValidateField(key domain.FieldKey, value string) error {
	return validate.Field(key, value)
}

// WarmUp pre-exercises the normalizer and scorer.
func (v *Verifier) WarmUp(ctx context.Context, wc warmup.Config) {
	if v.warmed {
		v.logger.Debug("System already warmed up, skipping")
		return
	}

	mgr := warmup.NewManager(v.logger, wc)
	mgr.RegisterScorer(v.scorer)
	mgr.RegisterNormalizer(v.normalizer)
	mgr.WarmUp(ctx)
	v.warmed = true
}
