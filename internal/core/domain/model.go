// Package domain holds the data model shared by the verification engine,
// the field validators and the recognition adapters.
package domain

// FieldKey identifies one of the semantic fields the engine knows about.
type FieldKey string

const (
	FieldName     FieldKey = "name"
	FieldAge      FieldKey = "age"
	FieldGender   FieldKey = "gender"
	FieldAddress  FieldKey = "address"
	FieldIDNumber FieldKey = "idNumber"
	FieldEmail    FieldKey = "email"
	FieldPhone    FieldKey = "phone"
)

// CanonicalFields is the fixed, ordered set of semantic field keys. Every
// comparison produces exactly one result per entry, in this order. The
// validator and the comparer both dispatch on this same enumeration.
var CanonicalFields = []FieldKey{
	FieldName,
	FieldAge,
	FieldGender,
	FieldAddress,
	FieldIDNumber,
	FieldEmail,
	FieldPhone,
}

// Label returns the human-readable label for a field key.
func (k FieldKey) Label() string {
	switch k {
	case FieldName:
		return "Full Name"
	case FieldAge:
		return "Age"
	case FieldGender:
		return "Gender"
	case FieldAddress:
		return "Address"
	case FieldIDNumber:
		return "ID Number"
	case FieldEmail:
		return "Email"
	case FieldPhone:
		return "Phone"
	default:
		return string(k)
	}
}

// MatchStatus classifies the outcome of a single field comparison.
type MatchStatus string

const (
	StatusMatch    MatchStatus = "MATCH"
	StatusPartial  MatchStatus = "PARTIAL"
	StatusMismatch MatchStatus = "MISMATCH"
	StatusMissing  MatchStatus = "MISSING"
)

// ConfidenceTier buckets the recognizer's own confidence in an extracted
// value, independent of whether the value matches the claim.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "High"
	TierMedium ConfidenceTier = "Medium"
	TierLow    ConfidenceTier = "Low"
)

// TierFor buckets a recognition confidence (0-100). Lower bounds are closed
// so that this tiering and the match-status tiering never disagree on
// boundary values.
func TierFor(confidence float64) ConfidenceTier {
	switch {
	case confidence >= 90:
		return TierHigh
	case confidence >= 70:
		return TierMedium
	default:
		return TierLow
	}
}

// ExtractedField is a single field value produced by the recognition backend.
// The engine reads Value, Confidence and IsHandwritten; the remaining fields
// are carried for presentation layers.
type ExtractedField struct {
	Value         string  `json:"value"`
	Confidence    float64 `json:"confidence"` // 0-100
	Label         string  `json:"label"`
	IsHandwritten bool    `json:"isHandwritten,omitempty"`
	// BoundingBox is [ymin, xmin, ymax, xmax] normalized to 0-1000.
	BoundingBox   []float64 `json:"boundingBox,omitempty"`
	SourcePageIdx *int      `json:"sourcePageIdx,omitempty"`
}

// QualityMetrics describes the recognizer's assessment of document imagery.
// It is a read-only input; the engine never mutates it.
type QualityMetrics struct {
	BlurScore     float64  `json:"blurScore"`     // 0 (very blurry) - 10 (sharp)
	LightingScore float64  `json:"lightingScore"` // 0 (poor) - 10 (perfect)
	IsReadable    bool     `json:"isReadable"`
	Issues        []string `json:"issues"`
}

// ExtractionRecord maps semantic field keys to extracted fields. Absent keys
// are treated as missing values, never as errors.
type ExtractionRecord map[FieldKey]ExtractedField

// Lookup returns the extracted field for a key, or a zero field when the key
// is absent.
func (r ExtractionRecord) Lookup(key FieldKey) ExtractedField {
	if r == nil {
		return ExtractedField{}
	}
	return r[key]
}

// RecognitionResult is the full envelope returned by a recognition backend:
// the field mapping plus the quality block and document-level metadata.
type RecognitionResult struct {
	Fields           ExtractionRecord `json:"fields"`
	Quality          QualityMetrics   `json:"quality"`
	DetectedLanguage string           `json:"detectedLanguage"`
	DocumentType     string           `json:"documentType"`
}

// ClaimRecord is the user-submitted identity data to verify against. All
// values are raw text; age is parsed only where a validator needs a number.
type ClaimRecord struct {
	Name     string `json:"name"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	IDNumber string `json:"idNumber"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Get returns the claimed value for a canonical field key.
func (c ClaimRecord) Get(key FieldKey) string {
	switch key {
	case FieldName:
		return c.Name
	case FieldAge:
		return c.Age
	case FieldGender:
		return c.Gender
	case FieldAddress:
		return c.Address
	case FieldIDNumber:
		return c.IDNumber
	case FieldEmail:
		return c.Email
	case FieldPhone:
		return c.Phone
	default:
		return ""
	}
}

// FieldComparisonResult is the verification record for one field. It is
// derived data, recomputed fresh on every comparison call.
type FieldComparisonResult struct {
	FieldKey       FieldKey    `json:"fieldKey"`
	ClaimedValue   string      `json:"claimedValue"`
	ExtractedValue string      `json:"extractedValue"`
	MatchScore     int         `json:"matchScore"` // 0-100
	Status         MatchStatus `json:"status"`
	IsHandwritten  bool        `json:"isHandwritten,omitempty"`
	Confidence     float64     `json:"confidence"` // recognition confidence, 0-100
}

// Document is a single uploaded document image or PDF handed to a
// recognition backend.
type Document struct {
	ID       string `json:"id"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}
