package ports

import "github.com/Khushi-Roy-123/MOSIP/internal/core/domain"

// Comparer runs a full claim-versus-extraction comparison, producing one
// result per canonical field key, in canonical order.
type Comparer interface {
	Compare(claim domain.ClaimRecord, extraction domain.ExtractionRecord) []domain.FieldComparisonResult
}
