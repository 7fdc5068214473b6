package recognizer

import (
	"testing"

	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
)

const samplePayload = `{
  "quality": {
    "blurScore": 7.5,
    "lightingScore": 8,
    "isReadable": true,
    "issues": ["Glare"]
  },
  "detectedLanguage": "English",
  "documentType": "National ID",
  "fields": {
    "name": {
      "value": "Ananya Sharma",
      "confidence": 94,
      "label": "Full Name",
      "boundingBox": [120, 80, 160, 520],
      "sourcePageIdx": 0
    },
    "age": {"value": "29", "confidence": 88, "label": "Age", "isHandwritten": true},
    "phoneNumber": {"value": "+91 98765 43210", "confidence": 77, "label": "Phone"}
  }
}`

func TestParseResponse(t *testing.T) {
	result, err := parseResponse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}

	if result.DocumentType != "National ID" {
		t.Errorf("DocumentType = %q", result.DocumentType)
	}
	if result.DetectedLanguage != "English" {
		t.Errorf("DetectedLanguage = %q", result.DetectedLanguage)
	}
	if !result.Quality.IsReadable || result.Quality.BlurScore != 7.5 {
		t.Errorf("Quality = %+v", result.Quality)
	}
	if len(result.Quality.Issues) != 1 || result.Quality.Issues[0] != "Glare" {
		t.Errorf("Issues = %v", result.Quality.Issues)
	}

	name := result.Fields.Lookup(domain.FieldName)
	if name.Value != "Ananya Sharma" || name.Confidence != 94 {
		t.Errorf("name = %+v", name)
	}
	if len(name.BoundingBox) != 4 || name.BoundingBox[3] != 520 {
		t.Errorf("boundingBox = %v", name.BoundingBox)
	}
	if name.SourcePageIdx == nil || *name.SourcePageIdx != 0 {
		t.Errorf("sourcePageIdx = %v", name.SourcePageIdx)
	}

	age := result.Fields.Lookup(domain.FieldAge)
	if !age.IsHandwritten {
		t.Error("age.IsHandwritten = false")
	}

	// The legacy phoneNumber key folds into the canonical phone entry.
	if _, ok := result.Fields[domain.FieldKey("phoneNumber")]; ok {
		t.Error("legacy phoneNumber key survived parsing")
	}
	if phone := result.Fields.Lookup(domain.FieldPhone); phone.Value != "+91 98765 43210" {
		t.Errorf("phone = %+v", phone)
	}
}

func TestParseResponseEmptyFields(t *testing.T) {
	result, err := parseResponse([]byte(`{"quality": {"blurScore": 1, "lightingScore": 1, "isReadable": false, "issues": []}}`))
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if result.Fields == nil {
		t.Fatal("Fields is nil, want empty record")
	}
	if len(result.Fields) != 0 {
		t.Errorf("Fields = %v, want empty", result.Fields)
	}
}

func TestParseResponseMalformed(t *testing.T) {
	if _, err := parseResponse([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestRecognitionSchemaCoversCanonicalFields(t *testing.T) {
	schema := recognitionSchema()
	fields := schema.Properties["fields"]
	if fields == nil {
		t.Fatal("schema has no fields block")
	}
	for _, key := range domain.CanonicalFields {
		if _, ok := fields.Properties[string(key)]; !ok {
			t.Errorf("schema missing field %q", key)
		}
	}
}
