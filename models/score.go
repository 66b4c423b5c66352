package models

import "time"

// Score is the five-dimension Price-Reliability-Trust Score of a single
// observation. Exactly one score exists per observation; recomputing after
// an edit replaces the prior row. Context fields (provider, city, buckets,
// ride time, trust weight) are denormalised from the observation so the
// aggregation engine can run off the scores collection alone.
type Score struct {
	ID            string `bson:"id" json:"id"`
	ObservationID string `bson:"observationId" json:"observationId"`
	UserID        string `bson:"userId" json:"userId"`
	ProviderID    string `bson:"providerId" json:"providerId"`
	City          string `bson:"city" json:"city"`
	RouteType     string `bson:"routeType" json:"routeType,omitempty"`
	TimeBlock     string `bson:"timeBlock" json:"timeBlock,omitempty"`

	RideAt      time.Time `bson:"rideAt" json:"rideAt"`
	TrustWeight float64   `bson:"trustWeight" json:"trustWeight"`

	PriceIntegrity       float64 `bson:"priceIntegrity" json:"priceIntegrity"`
	PickupReliability    float64 `bson:"pickupReliability" json:"pickupReliability"`
	CancellationBehavior float64 `bson:"cancellationBehavior" json:"cancellationBehavior"`
	RouteIntegrity       float64 `bson:"routeIntegrity" json:"routeIntegrity"`
	SupportResolution    float64 `bson:"supportResolution" json:"supportResolution"`

	Total       float64 `bson:"total" json:"total"`
	Explanation string  `bson:"explanation" json:"explanation"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Dimension weights of the total score. They sum to exactly 1.0.
const (
	WeightPrice        = 0.30
	WeightPickup       = 0.25
	WeightCancellation = 0.20
	WeightRoute        = 0.15
	WeightSupport      = 0.10
)
