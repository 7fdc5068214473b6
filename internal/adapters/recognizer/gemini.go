// Package recognizer provides the Gemini-backed recognition backend. It is
// an external collaborator of the verification core: it produces extraction
// records and quality metrics, and the core treats its output as an opaque,
// already-validated snapshot.
package recognizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Khushi-Roy-123/MOSIP/internal/core/domain"
	"github.com/Khushi-Roy-123/MOSIP/internal/ports"
)

// DefaultModel is the Gemini model used for document analysis.
const DefaultModel = "gemini-2.5-flash"

const extractionPrompt = `Analyze the provided document image(s). These may be printed forms, ID cards, or handwritten notes.

1. **Quality Analysis**: Evaluate if the image is suitable for official processing (blur, lighting).
2. **Extraction**: Extract Name, Age (or calculate from DOB), Gender, Address, ID Number, Email, and Phone.
3. For every field report your confidence (0-100), whether the value is handwritten, the bounding box in [ymin, xmin, ymax, xmax] on a 0-1000 scale, and the 0-based page index it was found on.
4. Consolidate information if multiple pages are provided. Omit fields that are not present.`

// Gemini implements ports.Recognizer on top of the Gemini API.
type Gemini struct {
	logger ports.Logger
	apiKey string
	model  string
}

// Option configures the Gemini recognizer.
type Option func(*Gemini)

// WithModel overrides the Gemini model identifier.
func WithModel(model string) Option {
	return func(g *Gemini) {
		g.model = model
	}
}

// NewGemini creates a Gemini recognizer. The API key is required; it is
// typically sourced from the GEMINI_API_KEY environment variable by the
// caller.
func NewGemini(logger ports.Logger, apiKey string, opts ...Option) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	g := &Gemini{
		logger: logger,
		apiKey: apiKey,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Recognize submits the documents to Gemini with a structured-output schema
// and decodes the response into a RecognitionResult.
func (g *Gemini) Recognize(ctx context.Context, docs []domain.Document) (*domain.RecognitionResult, error) {
	if len(docs) == 0 {
		return nil, errors.New("at least one document is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = recognitionSchema()

	parts := make([]genai.Part, 0, len(docs)+1)
	for _, doc := range docs {
		parts = append(parts, genai.Blob{MIMEType: doc.MIMEType, Data: doc.Data})
	}
	parts = append(parts, genai.Text(extractionPrompt))

	g.logger.Info("Submitting documents for recognition",
		"documents", len(docs),
		"model", g.model,
	)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("no candidates returned from gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, errors.New("empty content returned from gemini")
	}

	text, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, errors.New("unexpected response format from gemini")
	}

	result, err := parseResponse([]byte(text))
	if err != nil {
		return nil, err
	}

	g.logger.Info("Recognition completed",
		"fields", len(result.Fields),
		"document_type", result.DocumentType,
		"language", result.DetectedLanguage,
		"readable", result.Quality.IsReadable,
	)
	return result, nil
}

var _ ports.Recognizer = (*Gemini)(nil)
