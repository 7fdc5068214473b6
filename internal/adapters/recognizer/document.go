package recognizer

import (
	"github.com/google/uuid"

	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
)

// NewDocument wraps raw document bytes with a generated identifier, ready
// for submission to a recognition backend.
func NewDocument(mimeType string, data []byte) domain.Document {
	return domain.Document{
		ID:       uuid.NewString(),
		MIMEType: mimeType,
		Data:     data,
	}
}
