// Package warmup pre-exercises normalizers and scorers so that buffer pools
// and lookup tables are populated before the first real verification.
package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

// Config defines configuration for warming up the system
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  1000,
		Duration:    2 * time.Second,
		ForceGC:     true,
	}
}

// Representative identity-field values: mixed case, punctuation, digits and
// a substring-consistent address pair, so warmup touches the same code paths
// production comparisons do.
var samplePairs = [][2]string{
	{"Ananya Sharma", "Ananya Sharna"},
	{"123 Main St, Apt 4", "123 Main St"},
	{"jane.doe@example.com", "jane.doe@example.com"},
	{"+1 (555) 010-0199", "5550100199"},
	{"Non-Binary", "non binary"},
	{"MH-1234-5678-9012", "MH 1234 5678 9012"},
}

// Manager handles warmup operations
type Manager struct {
	logger      ports.Logger
	scorers     []ports.SimilarityScorer
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config Config) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterScorer adds a scorer to be warmed up
func (wm *Manager) RegisterScorer(scorer ports.SimilarityScorer) {
	wm.scorers = append(wm.scorers, scorer)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.scorers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.run(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
	)
}

func (wm *Manager) run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				pair := samplePairs[j%len(samplePairs)]
				for _, normalizer := range wm.normalizers {
					_ = normalizer.Normalize(pair[0])
					_ = normalizer.Normalize(pair[1])
				}
				for _, scorer := range wm.scorers {
					_ = scorer.Score(pair[0], pair[1])
				}
			}
		}()
	}
	wg.Wait()
}
