// Package batch verifies many claim/extraction pairs concurrently. Every
// comparison is an independent pure computation, so the worker pool needs no
// coordination beyond job distribution.
package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

// DefaultWorkers is the default number of worker goroutines; 0 means use
// runtime.NumCPU().
const DefaultWorkers = 0

// MaxJobQueueSize limits the number of pending jobs
const MaxJobQueueSize = 32

// Job is one claim/extraction pair to verify.
type Job struct {
	ID         string
	Claim      domain.ClaimRecord
	Extraction domain.ExtractionRecord
}

// NewJob creates a job with a generated identifier.
func NewJob(claim domain.ClaimRecord, extraction domain.ExtractionRecord) Job {
	return Job{
		ID:         uuid.NewString(),
		Claim:      claim,
		Extraction: extraction,
	}
}

// JobResult is the verification report for one job.
type JobResult struct {
	ID      string
	Results []domain.FieldComparisonResult
}

// Processor fans jobs out over a worker pool and collects reports in input
// order.
type Processor struct {
	comparer ports.Comparer
	logger   ports.Logger
	workers  int
}

// NewProcessor creates a batch processor. workers <= 0 selects one worker
// per CPU.
func NewProcessor(comparer ports.Comparer, logger ports.Logger, workers int) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{
		comparer: comparer,
		logger:   logger,
		workers:  workers,
	}
}

type indexedJob struct {
	index int
	job   Job
}

// Process verifies all jobs and returns one JobResult per job, in the order
// the jobs were supplied. It returns ctx.Err() if the context is cancelled
// before all jobs complete.
func (p *Processor) Process(ctx context.Context, jobs []Job) ([]JobResult, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	startTime := time.Now()
	p.logger.Info("Starting batch verification",
		"jobs", len(jobs),
		"workers", p.workers,
	)

	jobCh := make(chan indexedJob, MaxJobQueueSize)
	results := make([]JobResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ij := range jobCh {
				results[ij.index] = JobResult{
					ID:      ij.job.ID,
					Results: p.comparer.Compare(ij.job.Claim, ij.job.Extraction),
				}
			}
		}()
	}

	var err error
feed:
	for i, job := range jobs {
		select {
		case jobCh <- indexedJob{index: i, job: job}:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobCh)
	wg.Wait()

	if err != nil {
		p.logger.Warn("Batch verification cancelled",
			"jobs", len(jobs),
			"error", err,
		)
		return nil, err
	}

	p.logger.Info("Batch verification completed",
		"jobs", len(jobs),
		"duration", time.Since(startTime),
	)
	return results, nil
}
