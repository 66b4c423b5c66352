package truth

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"travony/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreObservationBounds(t *testing.T) {
	observations := []*models.Observation{
		{}, // no data at all
		{
			QuotedPrice:         floatPtr(10),
			FinalPrice:          floatPtr(100), // +900% deviation
			QuotedETAMinutes:    floatPtr(3),
			PickupWaitMinutes:   floatPtr(60),
			DriverCancelled:     boolPtr(true),
			CancellationCount:   intPtr(5),
			ExpectedDistanceKm:  floatPtr(5),
			ActualDistanceKm:    floatPtr(50),
			ExpectedDurationMin: floatPtr(10),
			ActualDurationMin:   floatPtr(120),
			SupportResolved:     boolPtr(false),
			SupportOutcome:      models.OutcomeNoResponse,
		},
		{
			QuotedPrice:         floatPtr(20),
			FinalPrice:          floatPtr(20),
			QuotedETAMinutes:    floatPtr(5),
			PickupWaitMinutes:   floatPtr(3),
			DriverCancelled:     boolPtr(false),
			ExpectedDistanceKm:  floatPtr(8),
			ActualDistanceKm:    floatPtr(8),
			ExpectedDurationMin: floatPtr(20),
			ActualDurationMin:   floatPtr(20),
			SupportResolved:     boolPtr(true),
			SupportOutcome:      models.OutcomeFullRefund,
		},
	}

	for _, obs := range observations {
		score := ScoreObservation(obs)
		for name, v := range map[string]float64{
			"total":        score.Total,
			"price":        score.PriceIntegrity,
			"pickup":       score.PickupReliability,
			"cancellation": score.CancellationBehavior,
			"route":        score.RouteIntegrity,
			"support":      score.SupportResolution,
		} {
			assert.GreaterOrEqual(t, v, 0.0, "%s must not go below 0", name)
			assert.LessOrEqual(t, v, 100.0, "%s must not exceed 100", name)
		}
	}
}

func TestTotalIsRoundedWeightedSumOfSubScores(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		obs := &models.Observation{
			QuotedPrice:         floatPtr(10 + rng.Float64()*90),
			FinalPrice:          floatPtr(10 + rng.Float64()*180),
			QuotedETAMinutes:    floatPtr(rng.Float64() * 15),
			PickupWaitMinutes:   floatPtr(rng.Float64() * 45),
			CancellationCount:   intPtr(rng.Intn(4)),
			ExpectedDistanceKm:  floatPtr(1 + rng.Float64()*20),
			ActualDistanceKm:    floatPtr(1 + rng.Float64()*30),
			ExpectedDurationMin: floatPtr(5 + rng.Float64()*40),
			ActualDurationMin:   floatPtr(5 + rng.Float64()*80),
		}
		score := ScoreObservation(obs)
		expected := math.Round(
			score.PriceIntegrity*models.WeightPrice +
				score.PickupReliability*models.WeightPickup +
				score.CancellationBehavior*models.WeightCancellation +
				score.RouteIntegrity*models.WeightRoute +
				score.SupportResolution*models.WeightSupport,
		)
		require.Equal(t, expected, score.Total)
	}
}

func TestDimensionWeightsSumToOne(t *testing.T) {
	sum := models.WeightPrice + models.WeightPickup + models.WeightCancellation +
		models.WeightRoute + models.WeightSupport
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestScoreObservationIsDeterministic(t *testing.T) {
	obs := &models.Observation{
		ID:                "obs-1",
		QuotedPrice:       floatPtr(100),
		FinalPrice:        floatPtr(108),
		QuotedETAMinutes:  floatPtr(4),
		PickupWaitMinutes: floatPtr(7),
	}
	first := ScoreObservation(obs)
	second := ScoreObservation(obs)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Explanation, second.Explanation)
}

func TestPriceIntegrityMonotonicAcrossDeviationBuckets(t *testing.T) {
	// Increasing deviation must never increase the price score.
	deviations := []float64{0, 0.02, 0.05, 0.10, 0.20, 0.30, 0.50, 0.80, 2.0}
	prev := 101.0
	for _, d := range deviations {
		obs := &models.Observation{
			QuotedPrice: floatPtr(100),
			FinalPrice:  floatPtr(100 * (1 + d)),
		}
		score := priceIntegrityScore(obs)
		assert.LessOrEqual(t, score, prev, "deviation %.2f must not score above smaller deviations", d)
		prev = score
	}
}

func TestPriceIntegrityBuckets(t *testing.T) {
	cases := []struct {
		name     string
		final    float64
		expected float64
	}{
		{"exact match", 100, 100},
		{"within 2 percent", 102, 100},
		{"within 5 percent", 105, 90},
		{"within 10 percent", 110, 75},
		{"within 20 percent", 120, 55},
		{"within 30 percent", 130, 35},
		{"within 50 percent", 150, 15},
		{"beyond 50 percent", 151, 0},
		{"undercharge counts too", 90, 75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obs := &models.Observation{QuotedPrice: floatPtr(100), FinalPrice: floatPtr(tc.final)}
			assert.Equal(t, tc.expected, priceIntegrityScore(obs))
		})
	}
}

func TestMissingSignalsStayNeutral(t *testing.T) {
	obs := &models.Observation{}
	assert.Equal(t, neutralScore, priceIntegrityScore(obs))
	assert.Equal(t, neutralScore, pickupReliabilityScore(obs))
	assert.Equal(t, neutralScore, routeIntegrityScore(obs))
	assert.Equal(t, neutralScore, supportScore(obs))
	// Cancellation is the one optimistic default: no signal at all reads
	// as "probably fine".
	assert.Equal(t, noCancellationDataScore, cancellationScore(obs))
}

func TestPickupReliability(t *testing.T) {
	cases := []struct {
		name     string
		eta      float64
		wait     float64
		expected float64
	}{
		{"early pickup", 5, 3, 100},
		{"on time", 5, 5, 100},
		{"one minute late", 5, 6, 95},
		{"two late", 5, 7, 85},
		{"five late", 5, 10, 70},
		{"ten late", 5, 15, 45},
		{"fifteen late", 5, 20, 25},
		{"longer", 5, 40, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obs := &models.Observation{QuotedETAMinutes: floatPtr(tc.eta), PickupWaitMinutes: floatPtr(tc.wait)}
			assert.Equal(t, tc.expected, pickupReliabilityScore(obs))
		})
	}
}

func TestCancellationScore(t *testing.T) {
	assert.Equal(t, 100.0, cancellationScore(&models.Observation{DriverCancelled: boolPtr(false)}))
	assert.Equal(t, 40.0, cancellationScore(&models.Observation{DriverCancelled: boolPtr(true)}))
	assert.Equal(t, 20.0, cancellationScore(&models.Observation{DriverCancelled: boolPtr(true), CancellationCount: intPtr(1)}))
	assert.Equal(t, 10.0, cancellationScore(&models.Observation{CancellationCount: intPtr(2)}))
	assert.Equal(t, 0.0, cancellationScore(&models.Observation{CancellationCount: intPtr(3)}))
}

func TestSupportScoreOutcomes(t *testing.T) {
	cases := []struct {
		resolved bool
		outcome  string
		expected float64
	}{
		{true, models.OutcomeFullRefund, 90},
		{true, models.OutcomePartialRefund, 70},
		{true, models.OutcomeApologyCredit, 60},
		{true, models.OutcomeResolved, 80},
		{false, models.OutcomeDenied, 15},
		{false, models.OutcomeNoResponse, 5},
		{false, "", neutralScore},
	}
	for _, tc := range cases {
		obs := &models.Observation{SupportResolved: boolPtr(tc.resolved), SupportOutcome: tc.outcome}
		assert.Equal(t, tc.expected, supportScore(obs), "resolved=%v outcome=%q", tc.resolved, tc.outcome)
	}
}

func TestWeightedTotal(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	obs := &models.Observation{
		RideAt:            now,
		QuotedPrice:       floatPtr(20),
		FinalPrice:        floatPtr(20), // 100
		QuotedETAMinutes:  floatPtr(5),
		PickupWaitMinutes: floatPtr(5), // 100
		// no cancellation signal -> 75, no route -> 50, no support -> 50
	}
	score := ScoreObservation(obs)
	// 100*.30 + 100*.25 + 75*.20 + 50*.15 + 50*.10 = 82.5, rounded 83.
	require.Equal(t, 83.0, score.Total)
}

func TestExplanationBands(t *testing.T) {
	high := ScoreObservation(&models.Observation{
		QuotedPrice:       floatPtr(10),
		FinalPrice:        floatPtr(10),
		QuotedETAMinutes:  floatPtr(5),
		PickupWaitMinutes: floatPtr(4),
		DriverCancelled:   boolPtr(false),
	})
	assert.True(t, strings.HasPrefix(high.Explanation, "This ride was highly reliable."), high.Explanation)
	assert.Contains(t, high.Explanation, "the final price matched the quote")

	low := ScoreObservation(&models.Observation{
		QuotedPrice:       floatPtr(10),
		FinalPrice:        floatPtr(30),
		QuotedETAMinutes:  floatPtr(3),
		PickupWaitMinutes: floatPtr(45),
		CancellationCount: intPtr(3),
	})
	assert.True(t, strings.HasPrefix(low.Explanation, "This ride had major problems."), low.Explanation)
	assert.Contains(t, low.Explanation, "the final price deviated badly from the quote")
	assert.Contains(t, low.Explanation, "driver cancellation was reported")
}
