// File: services/extraction/geminiClient.go
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"travony/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const extractionPrompt = `You are given the OCR text of a ride-hailing fare screenshot.
Extract the following fields into a single JSON object, omitting any field
not present in the text. Prices are plain numbers without currency symbols.
Fields: quotedPrice, finalPrice, quotedEtaMinutes, pickupWaitMinutes,
expectedDistanceKm, actualDistanceKm, expectedDurationMin, actualDurationMin.
Respond with the JSON object only.

OCR text:
`

// GeminiExtractor extracts fare details from screenshot OCR text using the
// Gemini API.
type GeminiExtractor struct {
	model *genai.GenerativeModel
}

func NewGeminiExtractor(apiKey string) *GeminiExtractor {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel("models/gemini-1.5-flash")
	return &GeminiExtractor{model: model}
}

func (g *GeminiExtractor) ExtractFareDetails(ctx context.Context, ocrText string) (models.SignalPatch, error) {
	var patch models.SignalPatch

	resp, err := g.model.GenerateContent(ctx, genai.Text(extractionPrompt+ocrText))
	if err != nil {
		return patch, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return patch, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	raw := stripCodeFences(sb.String())
	if err := json.Unmarshal([]byte(raw), &patch); err != nil {
		return models.SignalPatch{}, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	return patch, nil
}

// stripCodeFences removes a surrounding markdown code block, which Gemini
// adds despite being asked for plain JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
