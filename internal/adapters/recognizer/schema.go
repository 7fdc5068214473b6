package recognizer

import (
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
)

// fieldSchema builds the structured-output schema for one extracted field.
func fieldSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"value":      {Type: genai.TypeString, Description: description},
			"confidence": {Type: genai.TypeNumber},
			"label":      {Type: genai.TypeString},
			"isHandwritten": {
				Type:        genai.TypeBoolean,
				Description: "True if this specific field value is handwritten",
			},
			"boundingBox": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeNumber},
				Description: "Bounding box of the detected text in [ymin, xmin, ymax, xmax] format (scale 0-1000).",
			},
			"sourcePageIdx": {
				Type:        genai.TypeInteger,
				Description: "The index of the page (0-based) where this field was found.",
			},
		},
	}
}

// recognitionSchema is the response schema for the full recognition
// envelope: quality block, document metadata and the canonical fields.
func recognitionSchema() *genai.Schema {
	fields := make(map[string]*genai.Schema, len(domain.CanonicalFields))
	for _, key := range domain.CanonicalFields {
		fields[string(key)] = fieldSchema(key.Label())
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"quality": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"blurScore":     {Type: genai.TypeNumber, Description: "Score from 0 (unreadable) to 10 (sharp)"},
					"lightingScore": {Type: genai.TypeNumber, Description: "Score from 0 (bad) to 10 (perfect)"},
					"isReadable":    {Type: genai.TypeBoolean},
					"issues": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "List of quality issues (e.g., 'Glare', 'Blur', 'Folded')",
					},
				},
				Required: []string{"blurScore", "lightingScore", "isReadable", "issues"},
			},
			"detectedLanguage": {
				Type:        genai.TypeString,
				Description: "The primary language of the document (e.g., 'English', 'Arabic', 'Hindi')",
			},
			"documentType": {
				Type:        genai.TypeString,
				Description: "Type of document (e.g., 'National ID', 'Passport', 'Utility Bill', 'Handwritten Note')",
			},
			"fields": {
				Type:        genai.TypeObject,
				Description: "Extracted fields. Consolidate info if multiple pages.",
				Properties:  fields,
			},
		},
	}
}

// parseResponse decodes a structured recognition payload. Recognizers that
// emit the legacy "phoneNumber" key have it folded into the canonical
// "phone" entry.
func parseResponse(payload []byte) (*domain.RecognitionResult, error) {
	var result domain.RecognitionResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode recognition payload: %w", err)
	}

	if result.Fields == nil {
		result.Fields = domain.ExtractionRecord{}
	}
	if legacy, ok := result.Fields[domain.FieldKey("phoneNumber")]; ok {
		if _, exists := result.Fields[domain.FieldPhone]; !exists {
			result.Fields[domain.FieldPhone] = legacy
		}
		delete(result.Fields, domain.FieldKey("phoneNumber"))
	}

	return &result, nil
}
