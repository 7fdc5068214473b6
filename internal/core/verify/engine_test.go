package verify

import (
	"testing"

	"github.com/Khushi-Roy-123/MOSIP/internal/adapters/normalizer"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/core/similarity"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	scorer, err := similarity.NewScorer(similarity.DefaultScorerConfig(), nopLogger{}, normalizer.NewDefaultNormalizer())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	engine, err := NewEngine(DefaultEngineConfig(), nopLogger{}, scorer)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func resultFor(t *testing.T, results []domain.FieldComparisonResult, key domain.FieldKey) domain.FieldComparisonResult {
	t.Helper()
	for _, r := range results {
		if r.FieldKey == key {
			return r
		}
	}
	t.Fatalf("no result for field %q", key)
	return domain.FieldComparisonResult{}
}

func TestCompareClassification(t *testing.T) {
	claim := domain.ClaimRecord{
		Name:    "Ananya Sharma",
		Age:     "29",
		Gender:  "Female",
		Address: "123 Main St",
		Email:   "a@b.com",
		Phone:   "9876543210",
	}
	extraction := domain.ExtractionRecord{
		domain.FieldName:    {Value: "Ananya Sharna", Confidence: 88, IsHandwritten: true},
		domain.FieldAge:     {Value: "29", Confidence: 95},
		domain.FieldGender:  {Value: "female", Confidence: 97},
		domain.FieldAddress: {Value: "123 Main St, Apt 4", Confidence: 74},
		// No digit overlaps with the claim, so the edit distance hits the
		// length bound and the score floors at 0.
		domain.FieldPhone:   {Value: "not a number", Confidence: 20},
		// email deliberately absent
	}

	results := newTestEngine(t).Compare(claim, extraction)

	tests := []struct {
		key    domain.FieldKey
		score  int
		status domain.MatchStatus
	}{
		// One-letter OCR slip: distance 1 over 13 characters scores 92.
		{domain.FieldName, 92, domain.StatusMatch},
		{domain.FieldAge, 100, domain.StatusMatch},
		{domain.FieldGender, 100, domain.StatusMatch},
		// Containment boost lands the address at the 85 floor: PARTIAL.
		{domain.FieldAddress, 85, domain.StatusPartial},
		// idNumber is empty on both sides: score 100, but MISSING wins.
		{domain.FieldIDNumber, 100, domain.StatusMissing},
		// email key absent from the extraction: MISSING despite the raw score.
		{domain.FieldEmail, 0, domain.StatusMissing},
		{domain.FieldPhone, 0, domain.StatusMismatch},
	}

	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			r := resultFor(t, results, tc.key)
			if r.MatchScore != tc.score {
				t.Errorf("score = %d, want %d", r.MatchScore, tc.score)
			}
			if r.Status != tc.status {
				t.Errorf("status = %s, want %s", r.Status, tc.status)
			}
		})
	}
}

func TestComparePartialTier(t *testing.T) {
	claim := domain.ClaimRecord{Name: "Johnathan"}
	extraction := domain.ExtractionRecord{
		// Distance 1 over 9 characters scores 89, one below the MATCH bound.
		domain.FieldName: {Value: "Jonathan", Confidence: 90},
	}

	r := resultFor(t, newTestEngine(t).Compare(claim, extraction), domain.FieldName)
	if r.MatchScore != 89 {
		t.Errorf("score = %d, want 89", r.MatchScore)
	}
	if r.Status != domain.StatusPartial {
		t.Errorf("status = %s, want %s", r.Status, domain.StatusPartial)
	}
}

func TestCompareAlwaysCoversCanonicalFields(t *testing.T) {
	tests := []struct {
		name       string
		claim      domain.ClaimRecord
		extraction domain.ExtractionRecord
	}{
		{"Empty everything", domain.ClaimRecord{}, nil},
		{"Empty extraction", domain.ClaimRecord{Name: "John Doe"}, domain.ExtractionRecord{}},
		{
			"Unknown extraction keys ignored",
			domain.ClaimRecord{},
			domain.ExtractionRecord{domain.FieldKey("passportNo"): {Value: "X123"}},
		},
	}

	engine := newTestEngine(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := engine.Compare(tc.claim, tc.extraction)
			if len(results) != len(domain.CanonicalFields) {
				t.Fatalf("got %d results, want %d", len(results), len(domain.CanonicalFields))
			}
			for i, key := range domain.CanonicalFields {
				if results[i].FieldKey != key {
					t.Errorf("results[%d] = %q, want %q", i, results[i].FieldKey, key)
				}
			}
		})
	}
}

func TestComparePassesThroughExtractionMetadata(t *testing.T) {
	extraction := domain.ExtractionRecord{
		domain.FieldName: {Value: "Ananya Sharma", Confidence: 83.5, IsHandwritten: true},
	}

	r := resultFor(t, newTestEngine(t).Compare(domain.ClaimRecord{Name: "Ananya Sharma"}, extraction), domain.FieldName)
	if !r.IsHandwritten {
		t.Error("IsHandwritten not carried through")
	}
	if r.Confidence != 83.5 {
		t.Errorf("Confidence = %v, want 83.5", r.Confidence)
	}
}

func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  EngineConfig
		wantErr bool
	}{
		{"Default config", DefaultEngineConfig(), false},
		{"Partial above match", EngineConfig{MatchThreshold: 70, PartialThreshold: 90}, true},
		{"Negative threshold", EngineConfig{MatchThreshold: 90, PartialThreshold: -1}, true},
		{"Match above 100", EngineConfig{MatchThreshold: 101, PartialThreshold: 70}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
