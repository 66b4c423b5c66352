package truth

import (
	"context"
	"fmt"

	"travony/models"

	"go.uber.org/zap"
)

// Recommendation gate: a provider needs both enough statistical confidence
// and enough raw samples before it may be recommended.
const (
	minRecommendConfidence = 0.3
	minRecommendSamples    = minSampleCount
)

// GetRankings returns every ranked provider for a context, most reliable
// first, plus a message distinguishing "no data", "data below the sample
// threshold" and "sufficient data".
func (e *DefaultTruthEngine) GetRankings(ctx context.Context, city, timeBlock, routeType string) (*models.RankingsResult, error) {
	city = SlugifyCity(city)
	if city == "" {
		return nil, ValidationError{Field: "city", Reason: "must not be empty"}
	}

	if e.Rankings != nil {
		cached, err := e.Rankings.Get(ctx, city, timeBlock, routeType)
		if err != nil {
			zap.L().Warn("rankings cache read failed", zap.String("city", city), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	aggs, err := e.Aggregates.GetByContext(ctx, city, timeBlock, routeType)
	if err != nil {
		return nil, fmt.Errorf("failed to load rankings for %s: %w", city, err)
	}

	result := &models.RankingsResult{
		City:      city,
		TimeBlock: timeBlock,
		RouteType: routeType,
	}

	if len(aggs) == 0 {
		// Distinguish a city nobody has reported on from one whose
		// providers are all below the sample threshold.
		providerIDs, err := e.Observations.ListProviderIDsByCity(ctx, city)
		if err != nil {
			return nil, fmt.Errorf("failed to check data presence for %s: %w", city, err)
		}
		if len(providerIDs) == 0 {
			result.Sufficiency = models.DataSufficiencyNone
			result.Message = fmt.Sprintf("No ride reports for %s yet. Be the first to contribute.", city)
		} else {
			result.Sufficiency = models.DataSufficiencyBelowMinimum
			result.Message = fmt.Sprintf("Ride reports exist for %s, but no provider has reached %d reports yet.", city, minSampleCount)
		}
		return result, nil
	}

	for _, agg := range aggs {
		entry := models.RankingEntry{
			ProviderID:  agg.ProviderID,
			AvgScore:    agg.AvgTotal,
			SampleCount: agg.SampleCount,
			Confidence:  agg.Confidence,
			Dimensions:  agg.Dimensions,
		}
		if provider, err := e.Providers.GetByID(ctx, agg.ProviderID); err == nil && provider != nil {
			entry.ProviderName = provider.Name
		}
		result.Rankings = append(result.Rankings, entry)
	}
	result.Sufficiency = models.DataSufficiencySufficient
	result.Message = fmt.Sprintf("Rankings for %s are based on %d provider(s) with sufficient data.", city, len(result.Rankings))

	if e.Rankings != nil {
		if err := e.Rankings.Set(ctx, result); err != nil {
			zap.L().Warn("rankings cache write failed", zap.String("city", city), zap.Error(err))
		}
	}
	return result, nil
}

// GetRecommendation picks the highest-scoring provider that clears both
// the confidence and sample-count gates. A nil result without error means
// no provider qualifies; that is a normal outcome, not a failure.
func (e *DefaultTruthEngine) GetRecommendation(ctx context.Context, city, timeBlock, routeType string) (*models.Recommendation, error) {
	city = SlugifyCity(city)
	if city == "" {
		return nil, ValidationError{Field: "city", Reason: "must not be empty"}
	}

	aggs, err := e.Aggregates.GetByContext(ctx, city, timeBlock, routeType)
	if err != nil {
		return nil, fmt.Errorf("failed to load aggregates for %s: %w", city, err)
	}

	var top *models.ProviderAggregate
	for i := range aggs {
		if aggs[i].Confidence >= minRecommendConfidence && aggs[i].SampleCount >= minRecommendSamples {
			top = &aggs[i]
			break // rows are sorted by average total descending
		}
	}
	if top == nil {
		return nil, nil
	}

	rec := &models.Recommendation{
		ProviderID:  top.ProviderID,
		AvgScore:    top.AvgTotal,
		Confidence:  top.Confidence,
		SampleCount: top.SampleCount,
	}
	name := top.ProviderID
	if provider, err := e.Providers.GetByID(ctx, top.ProviderID); err == nil && provider != nil {
		name = provider.Name
		rec.ProviderName = provider.Name
		rec.DeepLink = provider.DeepLinkScheme
	}
	rec.Reason = recommendationReason(name, city, *top)
	return rec, nil
}

// recommendationReason names the provider's strongest dimension when one
// stands out, and falls back to a generic highest-score sentence.
func recommendationReason(name, city string, agg models.ProviderAggregate) string {
	type dim struct {
		value  float64
		phrase string
	}
	dims := []dim{
		{agg.Dimensions.PriceIntegrity, "consistently accurate pricing"},
		{agg.Dimensions.PickupReliability, "reliable pickup times"},
		{agg.Dimensions.CancellationBehavior, "drivers who rarely cancel"},
		{agg.Dimensions.RouteIntegrity, "honest route handling"},
		{agg.Dimensions.SupportResolution, "responsive support"},
	}
	best := dims[0]
	for _, d := range dims[1:] {
		if d.value > best.value {
			best = d
		}
	}
	if best.value >= explainHighBar {
		return fmt.Sprintf("%s has the highest reliability score in %s, with %s.", name, city, best.phrase)
	}
	return fmt.Sprintf("%s has the highest overall reliability score in %s.", name, city)
}
