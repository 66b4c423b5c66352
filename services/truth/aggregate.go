package truth

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"travony/database/repository"
	"travony/models"

	"go.uber.org/zap"
)

// Aggregation parameters.
const (
	minSampleCount    = 5
	decayHalfLifeDays = 30.0
	confidenceSamples = 50.0
	trimLowerPercent  = 5.0
	trimUpperPercent  = 95.0
)

// RecomputeContext fully rebuilds the aggregation cache row for one
// (provider, city, timeBlock, routeType) context from the canonical score
// rows. Contexts below the minimum sample count get their row removed
// instead. The row is replaced wholesale, never patched, so concurrent
// recomputations converge regardless of ordering.
func (e *DefaultTruthEngine) RecomputeContext(ctx context.Context, providerID, city, timeBlock, routeType string) error {
	scores, err := e.Observations.ListScoresByContext(ctx, repository.ScoreFilter{
		ProviderID: providerID,
		City:       city,
		TimeBlock:  timeBlock,
		RouteType:  routeType,
	})
	if err != nil {
		return fmt.Errorf("failed to load scores for aggregation: %w", err)
	}

	if len(scores) < minSampleCount {
		if err := e.Aggregates.Delete(ctx, providerID, city, timeBlock, routeType); err != nil {
			return err
		}
		return nil
	}

	totals := make([]float64, len(scores))
	for i, s := range scores {
		totals[i] = s.Total
	}
	lower, upper := trimBounds(totals)

	now := e.now()
	var weightSum float64
	var totalSum float64
	var dims models.DimensionAverages
	for _, s := range scores {
		if s.Total < lower || s.Total > upper {
			continue
		}
		w := decayWeight(now, s.RideAt) * s.TrustWeight
		if w <= 0 {
			continue
		}
		weightSum += w
		totalSum += w * s.Total
		dims.PriceIntegrity += w * s.PriceIntegrity
		dims.PickupReliability += w * s.PickupReliability
		dims.CancellationBehavior += w * s.CancellationBehavior
		dims.RouteIntegrity += w * s.RouteIntegrity
		dims.SupportResolution += w * s.SupportResolution
	}
	if weightSum == 0 {
		// Every surviving row carried zero weight; treat the context as
		// having no usable data.
		return e.Aggregates.Delete(ctx, providerID, city, timeBlock, routeType)
	}

	agg := &models.ProviderAggregate{
		ProviderID: providerID,
		City:       city,
		TimeBlock:  timeBlock,
		RouteType:  routeType,
		AvgTotal:   math.Round(totalSum / weightSum),
		Dimensions: models.DimensionAverages{
			PriceIntegrity:       math.Round(dims.PriceIntegrity / weightSum),
			PickupReliability:    math.Round(dims.PickupReliability / weightSum),
			CancellationBehavior: math.Round(dims.CancellationBehavior / weightSum),
			RouteIntegrity:       math.Round(dims.RouteIntegrity / weightSum),
			SupportResolution:    math.Round(dims.SupportResolution / weightSum),
		},
		SampleCount: len(scores),
		Confidence:  math.Min(1, float64(len(scores))/confidenceSamples),
		UpdatedAt:   now,
	}
	if err := e.Aggregates.Upsert(ctx, agg); err != nil {
		return err
	}

	if e.Rankings != nil {
		if err := e.Rankings.Invalidate(ctx, city, timeBlock, routeType); err != nil {
			zap.L().Warn("rankings cache invalidation failed",
				zap.String("city", city), zap.Error(err))
		}
	}
	return nil
}

// refreshContextsFor recomputes every aggregation context a freshly stored
// score participates in: the fully qualified context plus the "any
// timeBlock" / "any routeType" variants.
func (e *DefaultTruthEngine) refreshContextsFor(ctx context.Context, score *models.Score) error {
	type key struct{ timeBlock, routeType string }
	contexts := map[key]struct{}{
		{"", ""}:                           {},
		{score.TimeBlock, ""}:              {},
		{"", score.RouteType}:              {},
		{score.TimeBlock, score.RouteType}: {},
	}
	for k := range contexts {
		if err := e.RecomputeContext(ctx, score.ProviderID, score.City, k.timeBlock, k.routeType); err != nil {
			return err
		}
	}
	return nil
}

// decayWeight is the exponential time-decay weight of an observation:
// 0.5^(ageDays/30), i.e. a 30-day half-life.
func decayWeight(now, rideAt time.Time) float64 {
	ageDays := now.Sub(rideAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Pow(0.5, ageDays/decayHalfLifeDays)
}

// trimBounds returns the 5th/95th percentile bounds of the totals using
// linear interpolation between order statistics. With fewer than
// minSampleCount values the bounds default to [0,100] (no trimming).
func trimBounds(totals []float64) (float64, float64) {
	if len(totals) < minSampleCount {
		return 0, 100
	}
	sorted := make([]float64, len(totals))
	copy(sorted, totals)
	sort.Float64s(sorted)
	return percentile(sorted, trimLowerPercent), percentile(sorted, trimUpperPercent)
}

// percentile interpolates linearly between the two nearest order
// statistics of an already sorted sample.
func percentile(sorted []float64, percent float64) float64 {
	rank := percent / 100 * float64(len(sorted)-1)
	low := int(math.Floor(rank))
	high := int(math.Ceil(rank))
	if low == high {
		return sorted[low]
	}
	frac := rank - float64(low)
	return sorted[low] + frac*(sorted[high]-sorted[low])
}
