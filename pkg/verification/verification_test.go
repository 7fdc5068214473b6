package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/normalizer"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/validate"
)

func TestNewDefaults(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	results := v.Compare(
		domain.ClaimRecord{Name: "John Doe", Age: "42"},
		domain.ExtractionRecord{
			domain.FieldName: {Value: "JOHN DOE!!", Confidence: 96},
			domain.FieldAge:  {Value: "42", Confidence: 99},
		},
	)
	require.Len(t, results, len(domain.CanonicalFields))

	assert.Equal(t, domain.FieldName, results[0].FieldKey)
	assert.Equal(t, 100, results[0].MatchScore)
	assert.Equal(t, domain.StatusMatch, results[0].Status)

	assert.Equal(t, domain.FieldAge, results[1].FieldKey)
	assert.Equal(t, domain.StatusMatch, results[1].Status)

	// Everything else is absent from the extraction.
	for _, r := range results[2:] {
		assert.Equal(t, domain.StatusMissing, r.Status)
	}
}

func TestNewWithNormalizerOptions(t *testing.T) {
	for name, opt := range map[string]Option{
		"fast":      WithFastNormalizer(),
		"optimized": WithOptimizedNormalizer(),
		"custom":    WithNormalizer(normalizer.NewDefaultNormalizer()),
	} {
		t.Run(name, func(t *testing.T) {
			v, err := New(opt)
			require.NoError(t, err)
			assert.Equal(t, 100, v.Similarity("John Doe", "JOHN DOE!!"))
			assert.Equal(t, 85, v.Similarity("123 Main St", "123 Main St, Apt 4"))
		})
	}
}

func TestValidateField(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.ValidateField(domain.FieldAge, "29"))
	assert.ErrorIs(t, v.ValidateField(domain.FieldAge, "150"), validate.ErrInvalidAge)
	assert.ErrorIs(t, v.ValidateField(domain.FieldEmail, "not-an-email"), validate.ErrInvalidEmail)
}
