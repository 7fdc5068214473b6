package batch

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/normalizer"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/similarity"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/verify"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }

func newTestProcessor(t *testing.T, workers int) *Processor {
	t.Helper()
	scorer, err := similarity.NewScorer(similarity.DefaultScorerConfig(), nopLogger{}, normalizer.NewDefaultNormalizer())
	require.NoError(t, err)
	engine, err := verify.NewEngine(verify.DefaultEngineConfig(), nopLogger{}, scorer)
	require.NoError(t, err)
	return NewProcessor(engine, nopLogger{}, workers)
}

func TestProcessPreservesOrder(t *testing.T) {
	processor := newTestProcessor(t, 4)

	jobs := make([]Job, 0, 50)
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("Person %d", i)
		jobs = append(jobs, NewJob(
			domain.ClaimRecord{Name: name},
			domain.ExtractionRecord{domain.FieldName: {Value: name, Confidence: 95}},
		))
	}

	results, err := processor.Process(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, r := range results {
		assert.Equal(t, jobs[i].ID, r.ID, "result %d out of order", i)
		require.Len(t, r.Results, len(domain.CanonicalFields))
		assert.Equal(t, domain.StatusMatch, r.Results[0].Status)
		assert.Equal(t, 100, r.Results[0].MatchScore)
	}
}

func TestProcessEmpty(t *testing.T) {
	processor := newTestProcessor(t, 2)
	results, err := processor.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestProcessCancelled(t *testing.T) {
	processor := newTestProcessor(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make([]Job, 0, 100)
	for i := 0; i < 100; i++ {
		jobs = append(jobs, NewJob(domain.ClaimRecord{}, nil))
	}

	results, err := processor.Process(ctx, jobs)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestNewJobAssignsID(t *testing.T) {
	a := NewJob(domain.ClaimRecord{}, nil)
	b := NewJob(domain.ClaimRecord{}, nil)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
