package ports

import (
	"context"

	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
)

// Recognizer is an external recognition backend that turns document imagery
// into an extraction record plus quality metrics. Implementations perform
// I/O; the verification core never does.
type Recognizer interface {
	Recognize(ctx context.Context, docs []domain.Document) (*domain.RecognitionResult, error)
}
