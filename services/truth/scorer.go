package truth

import (
	"math"
	"strings"

	"travony/models"

	"github.com/google/uuid"
)

// neutralScore is used whenever a dimension's inputs are absent: missing
// data is never penalized, nor rewarded.
const neutralScore = 50.0

// noCancellationDataScore is the slightly optimistic default when no
// cancellation signal of any kind was reported.
const noCancellationDataScore = 75.0

// ScoreObservation computes the five-dimension PRTS score of a single
// observation, the weighted total, and a deterministic explanation. The
// function is pure; calling it twice on the same observation yields the
// same score.
func ScoreObservation(obs *models.Observation) *models.Score {
	breakdown := models.Breakdown{
		PriceIntegrity:       priceIntegrityScore(obs),
		PickupReliability:    pickupReliabilityScore(obs),
		CancellationBehavior: cancellationScore(obs),
		RouteIntegrity:       routeIntegrityScore(obs),
		SupportResolution:    supportScore(obs),
	}

	total := math.Round(
		breakdown.PriceIntegrity*models.WeightPrice +
			breakdown.PickupReliability*models.WeightPickup +
			breakdown.CancellationBehavior*models.WeightCancellation +
			breakdown.RouteIntegrity*models.WeightRoute +
			breakdown.SupportResolution*models.WeightSupport,
	)

	return &models.Score{
		ID:            uuid.New().String(),
		ObservationID: obs.ID,
		UserID:        obs.UserID,
		ProviderID:    obs.ProviderID,
		City:          obs.City,
		RouteType:     obs.RouteType,
		TimeBlock:     obs.TimeBlock,
		RideAt:        obs.RideAt,
		TrustWeight:   obs.TrustWeight,

		PriceIntegrity:       breakdown.PriceIntegrity,
		PickupReliability:    breakdown.PickupReliability,
		CancellationBehavior: breakdown.CancellationBehavior,
		RouteIntegrity:       breakdown.RouteIntegrity,
		SupportResolution:    breakdown.SupportResolution,

		Total:       total,
		Explanation: buildExplanation(total, breakdown),
	}
}

// priceIntegrityScore rates how closely the final price matched the quote.
func priceIntegrityScore(obs *models.Observation) float64 {
	if obs.QuotedPrice == nil || obs.FinalPrice == nil || *obs.QuotedPrice <= 0 {
		return neutralScore
	}
	deviation := math.Abs(*obs.FinalPrice-*obs.QuotedPrice) / *obs.QuotedPrice
	switch {
	case deviation <= 0.02:
		return 100
	case deviation <= 0.05:
		return 90
	case deviation <= 0.10:
		return 75
	case deviation <= 0.20:
		return 55
	case deviation <= 0.30:
		return 35
	case deviation <= 0.50:
		return 15
	default:
		return 0
	}
}

// pickupReliabilityScore rates the pickup wait against the quoted ETA.
func pickupReliabilityScore(obs *models.Observation) float64 {
	if obs.QuotedETAMinutes == nil || obs.PickupWaitMinutes == nil {
		return neutralScore
	}
	delay := *obs.PickupWaitMinutes - *obs.QuotedETAMinutes
	switch {
	case delay <= 0:
		return 100
	case delay <= 1:
		return 95
	case delay <= 2:
		return 85
	case delay <= 5:
		return 70
	case delay <= 10:
		return 45
	case delay <= 15:
		return 25
	default:
		return 5
	}
}

func cancellationScore(obs *models.Observation) float64 {
	if obs.DriverCancelled == nil && obs.CancellationCount == nil {
		return noCancellationDataScore
	}
	cancelled := (obs.DriverCancelled != nil && *obs.DriverCancelled) ||
		(obs.CancellationCount != nil && *obs.CancellationCount > 0)
	if !cancelled {
		return 100
	}
	if obs.CancellationCount == nil {
		// Cancelled flag with unknown count.
		return 40
	}
	switch count := *obs.CancellationCount; {
	case count <= 1:
		return 20
	case count == 2:
		return 10
	default:
		return 0
	}
}

// routeIntegrityScore averages an independent distance-deviation score and
// duration-deviation score. When neither has data the whole dimension is
// neutral.
func routeIntegrityScore(obs *models.Observation) float64 {
	distance := distanceDeviationScore(obs.ExpectedDistanceKm, obs.ActualDistanceKm)
	duration := durationDeviationScore(obs.ExpectedDurationMin, obs.ActualDurationMin)
	return (distance + duration) / 2
}

func distanceDeviationScore(expected, actual *float64) float64 {
	if expected == nil || actual == nil || *expected <= 0 {
		return neutralScore
	}
	deviation := math.Abs(*actual-*expected) / *expected
	switch {
	case deviation <= 0.05:
		return 100
	case deviation <= 0.10:
		return 85
	case deviation <= 0.20:
		return 65
	case deviation <= 0.30:
		return 40
	case deviation <= 0.40:
		return 25
	default:
		return 10
	}
}

func durationDeviationScore(expected, actual *float64) float64 {
	if expected == nil || actual == nil || *expected <= 0 {
		return neutralScore
	}
	deviation := math.Abs(*actual-*expected) / *expected
	switch {
	case deviation <= 0.10:
		return 100
	case deviation <= 0.20:
		return 80
	case deviation <= 0.30:
		return 60
	case deviation <= 0.40:
		return 40
	case deviation <= 0.50:
		return 25
	default:
		return 15
	}
}

func supportScore(obs *models.Observation) float64 {
	if obs.SupportResolved == nil {
		return neutralScore
	}
	if *obs.SupportResolved {
		switch obs.SupportOutcome {
		case models.OutcomeFullRefund:
			return 90
		case models.OutcomePartialRefund:
			return 70
		case models.OutcomeApologyCredit:
			return 60
		default:
			return 80
		}
	}
	switch obs.SupportOutcome {
	case models.OutcomeDenied:
		return 15
	case models.OutcomeNoResponse:
		return 5
	case "":
		return neutralScore
	default:
		return 25
	}
}

// Explanation thresholds: a dimension only earns a clause when it crossed
// the high or low bar.
const (
	explainHighBar = 80.0
	explainLowBar  = 50.0
)

// buildExplanation produces a short deterministic summary: one overall
// sentence keyed by the total-score band, then at most one clause per
// dimension that crossed a threshold, in fixed dimension order.
func buildExplanation(total float64, b models.Breakdown) string {
	var overall string
	switch {
	case total >= 80:
		overall = "This ride was highly reliable."
	case total >= 60:
		overall = "This ride had some issues."
	case total >= 40:
		overall = "This ride had significant issues."
	default:
		overall = "This ride had major problems."
	}

	var clauses []string
	addClause := func(value float64, high, low string) {
		if value >= explainHighBar {
			clauses = append(clauses, high)
		} else if value < explainLowBar {
			clauses = append(clauses, low)
		}
	}
	addClause(b.PriceIntegrity,
		"the final price matched the quote",
		"the final price deviated badly from the quote")
	addClause(b.PickupReliability,
		"pickup arrived on time",
		"pickup was far later than quoted")
	addClause(b.CancellationBehavior,
		"the driver did not cancel",
		"driver cancellation was reported")
	addClause(b.RouteIntegrity,
		"the route matched expectations",
		"the route deviated from expectations")
	addClause(b.SupportResolution,
		"support resolved the issue well",
		"support handled the issue poorly")

	if len(clauses) == 0 {
		return overall
	}
	return overall + " Notably, " + strings.Join(clauses, "; ") + "."
}
