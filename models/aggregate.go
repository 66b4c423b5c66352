package models

import "time"

// DimensionAverages holds the weighted per-dimension averages of an
// aggregation context.
type DimensionAverages struct {
	PriceIntegrity       float64 `bson:"priceIntegrity" json:"priceIntegrity"`
	PickupReliability    float64 `bson:"pickupReliability" json:"pickupReliability"`
	CancellationBehavior float64 `bson:"cancellationBehavior" json:"cancellationBehavior"`
	RouteIntegrity       float64 `bson:"routeIntegrity" json:"routeIntegrity"`
	SupportResolution    float64 `bson:"supportResolution" json:"supportResolution"`
}

// ProviderAggregate is one fully recomputed aggregation cache row for a
// (provider, city, timeBlock-or-empty, routeType-or-empty) context. Rows
// only exist for contexts with at least the minimum sample count; each
// recomputation replaces the row wholesale.
type ProviderAggregate struct {
	ID         string `bson:"id" json:"id"` // provider|city|timeBlock|routeType
	ProviderID string `bson:"providerId" json:"providerId"`
	City       string `bson:"city" json:"city"`
	TimeBlock  string `bson:"timeBlock" json:"timeBlock,omitempty"` // empty means "any"
	RouteType  string `bson:"routeType" json:"routeType,omitempty"` // empty means "any"

	AvgTotal    float64           `bson:"avgTotal" json:"avgTotal"`
	Dimensions  DimensionAverages `bson:"dimensions" json:"dimensions"`
	SampleCount int               `bson:"sampleCount" json:"sampleCount"`
	Confidence  float64           `bson:"confidence" json:"confidence"`

	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Data-sufficiency states reported alongside rankings.
const (
	DataSufficiencyNone         = "no_data"
	DataSufficiencyBelowMinimum = "below_sample_threshold"
	DataSufficiencySufficient   = "sufficient"
)

// RankingEntry is one provider's row in a contextual ranking.
type RankingEntry struct {
	ProviderID   string            `json:"providerId"`
	ProviderName string            `json:"providerName"`
	AvgScore     float64           `json:"avgScore"`
	SampleCount  int               `json:"sampleCount"`
	Confidence   float64           `json:"confidence"`
	Dimensions   DimensionAverages `json:"dimensions"`
}

// RankingsResult is the full contextual ranking plus a human-readable
// data-sufficiency message.
type RankingsResult struct {
	City        string         `json:"city"`
	TimeBlock   string         `json:"timeBlock,omitempty"`
	RouteType   string         `json:"routeType,omitempty"`
	Rankings    []RankingEntry `json:"rankings"`
	Sufficiency string         `json:"sufficiency"`
	Message     string         `json:"message"`
}

// Recommendation is the single best pick for a context. A nil
// recommendation (engine returns nil, not an error) means no provider
// cleared the confidence gate.
type Recommendation struct {
	ProviderID   string  `json:"providerId"`
	ProviderName string  `json:"providerName"`
	AvgScore     float64 `json:"avgScore"`
	Confidence   float64 `json:"confidence"`
	SampleCount  int     `json:"sampleCount"`
	Reason       string  `json:"reason"`
	DeepLink     string  `json:"deepLink,omitempty"`
}
