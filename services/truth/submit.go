package truth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travony/models"

	"go.uber.org/zap"
)

// SubmitObservation runs one self-reported ride through the full pipeline:
// consent gate, signal normalization, fraud gate, persistence, scoring and
// aggregation refresh. Duplicate submissions are rejected before anything
// is persisted.
func (e *DefaultTruthEngine) SubmitObservation(ctx context.Context, userID, providerName, city string, signals models.RawSignals) (*models.SubmissionResult, error) {
	if userID == "" {
		return nil, ValidationError{Field: "userId", Reason: "must not be empty"}
	}
	if strings.TrimSpace(providerName) == "" {
		return nil, ValidationError{Field: "providerName", Reason: "must not be empty"}
	}
	citySlug := SlugifyCity(city)
	if citySlug == "" {
		return nil, ValidationError{Field: "city", Reason: "must not be empty"}
	}

	hasConsent, err := e.CheckConsent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasConsent {
		return nil, ConsentRequiredError{UserID: userID}
	}

	provider, err := e.Providers.GetOrCreateByName(ctx, providerName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider %q: %w", providerName, err)
	}

	// Server-side screenshot extraction, when the client sent raw OCR text
	// instead of parsed fields.
	if e.Extractor != nil && signals.Screenshot != nil &&
		signals.Screenshot.Text != "" && signals.Screenshot.Fields == (models.SignalPatch{}) {
		fields, err := e.Extractor.ExtractFareDetails(ctx, signals.Screenshot.Text)
		if err != nil {
			zap.L().Warn("screenshot extraction failed", zap.Error(err))
		} else {
			signals.Screenshot.Fields = fields
		}
	}

	fraud, err := e.gate().Validate(ctx, userID, provider.ID, citySlug, signals.GPSTrace)
	if err != nil {
		return nil, err
	}
	if fraud.HasFlag(models.FlagDuplicateSubmission) {
		return nil, DuplicateSubmissionError{UserID: userID, ProviderID: provider.ID}
	}

	merged := MergeSignals(signals)
	obs := buildObservation(userID, provider.ID, citySlug, merged, signals, e.now)
	obs.Provenance = models.ProvenanceSelfReported
	obs.TrustWeight = fraud.TrustWeight
	obs.FraudFlags = fraud.Flags

	if _, err := e.Observations.CreateObservation(ctx, obs); err != nil {
		return nil, err
	}

	return e.scoreAndRefresh(ctx, obs, fraud.Flags)
}

// AutoFeed converts one of the platform's own completed rides into a
// full-trust observation. The fraud gate is skipped; the consent gate is
// not.
func (e *DefaultTruthEngine) AutoFeed(ctx context.Context, ride models.PlatformRide) (*models.SubmissionResult, error) {
	citySlug := SlugifyCity(ride.City)
	if citySlug == "" {
		return nil, ValidationError{Field: "city", Reason: "must not be empty"}
	}

	hasConsent, err := e.CheckConsent(ctx, ride.UserID)
	if err != nil {
		return nil, err
	}
	if !hasConsent {
		return nil, ConsentRequiredError{UserID: ride.UserID}
	}

	provider, err := e.Providers.GetOrCreateByName(ctx, ride.ProviderName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider %q: %w", ride.ProviderName, err)
	}

	rideAt := ride.CompletedAt
	if rideAt.IsZero() {
		rideAt = e.now()
	}
	obs := &models.Observation{
		UserID:              ride.UserID,
		ProviderID:          provider.ID,
		City:                citySlug,
		RideAt:              rideAt,
		QuotedPrice:         ride.QuotedPrice,
		FinalPrice:          ride.FinalPrice,
		QuotedETAMinutes:    ride.QuotedETAMinutes,
		PickupWaitMinutes:   ride.PickupWaitMinutes,
		DriverCancelled:     ride.DriverCancelled,
		CancellationCount:   ride.CancellationCount,
		ExpectedDistanceKm:  ride.ExpectedDistanceKm,
		ActualDistanceKm:    ride.ActualDistanceKm,
		ExpectedDurationMin: ride.ExpectedDurationMin,
		ActualDurationMin:   ride.ActualDurationMin,
		Pickup:              ride.Pickup,
		Dropoff:             ride.Dropoff,
		ProofOfRide:         true,
		Provenance:          models.ProvenancePlatform,
		TrustWeight:         1.0,
	}
	obs.RouteType = RouteTypeForDistance(pickFirst(obs.ActualDistanceKm, obs.ExpectedDistanceKm))
	obs.TimeBlock = TimeBlockForTime(obs.RideAt)

	if _, err := e.Observations.CreateObservation(ctx, obs); err != nil {
		return nil, err
	}

	return e.scoreAndRefresh(ctx, obs, nil)
}

// GetScore returns the stored score of an observation.
func (e *DefaultTruthEngine) GetScore(ctx context.Context, observationID string) (*models.Score, error) {
	return e.Observations.GetScoreByObservationID(ctx, observationID)
}

// scoreAndRefresh computes and stores the observation's score and then
// rebuilds every aggregation context it participates in. An aggregation
// failure after the score is stored is logged rather than surfaced: the
// cache self-heals on the next write to the same context.
func (e *DefaultTruthEngine) scoreAndRefresh(ctx context.Context, obs *models.Observation, flags []models.FraudFlag) (*models.SubmissionResult, error) {
	score := ScoreObservation(obs)
	if err := e.Observations.UpsertScore(ctx, score); err != nil {
		return nil, err
	}

	if err := e.refreshContextsFor(ctx, score); err != nil {
		zap.L().Warn("aggregation refresh failed",
			zap.String("observationId", obs.ID),
			zap.Error(err),
		)
	}

	return &models.SubmissionResult{
		ObservationID: obs.ID,
		Total:         score.Total,
		Breakdown: models.Breakdown{
			PriceIntegrity:       score.PriceIntegrity,
			PickupReliability:    score.PickupReliability,
			CancellationBehavior: score.CancellationBehavior,
			RouteIntegrity:       score.RouteIntegrity,
			SupportResolution:    score.SupportResolution,
		},
		Explanation: score.Explanation,
		FraudFlags:  flags,
		TrustWeight: obs.TrustWeight,
	}, nil
}

// buildObservation maps the merged signal fields onto a new observation.
func buildObservation(userID, providerID, city string, merged models.SignalPatch, raw models.RawSignals, now func() time.Time) *models.Observation {
	obs := &models.Observation{
		UserID:              userID,
		ProviderID:          providerID,
		City:                city,
		QuotedPrice:         merged.QuotedPrice,
		FinalPrice:          merged.FinalPrice,
		QuotedETAMinutes:    merged.QuotedETAMinutes,
		PickupWaitMinutes:   merged.PickupWaitMinutes,
		DriverCancelled:     merged.DriverCancelled,
		CancellationCount:   merged.CancellationCount,
		ExpectedDistanceKm:  merged.ExpectedDistanceKm,
		ActualDistanceKm:    merged.ActualDistanceKm,
		ExpectedDurationMin: merged.ExpectedDurationMin,
		ActualDurationMin:   merged.ActualDurationMin,
		SupportResolved:     merged.SupportResolved,
		SupportOutcome:      merged.SupportOutcome,
		Pickup:              merged.Pickup,
		Dropoff:             merged.Dropoff,
		ProofOfRide:         raw.ProofOfRide,
		GPSTrace:            raw.GPSTrace,
	}
	if raw.Screenshot != nil {
		obs.ScreenshotRef = raw.Screenshot.Reference
	}
	if raw.Notification != nil {
		obs.NotificationText = raw.Notification.Text
	}

	switch {
	case merged.RideAt != nil:
		obs.RideAt = *merged.RideAt
	case raw.RideAt != nil:
		obs.RideAt = *raw.RideAt
	default:
		obs.RideAt = now()
	}
	obs.RouteType = RouteTypeForDistance(pickFirst(obs.ActualDistanceKm, obs.ExpectedDistanceKm))
	obs.TimeBlock = TimeBlockForTime(obs.RideAt)
	return obs
}

// pickFirst returns the first non-nil value.
func pickFirst(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
