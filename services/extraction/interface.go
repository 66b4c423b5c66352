package extraction

import (
	"context"

	"travony/models"
)

// ScreenshotExtractor turns the OCR text of a fare screenshot into a
// partial observation. Implementations are external collaborators of the
// signal normalizer; the truth engine only depends on this interface.
type ScreenshotExtractor interface {
	ExtractFareDetails(ctx context.Context, ocrText string) (models.SignalPatch, error)
}
