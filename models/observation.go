package models

import "time"

// Provenance records where an observation came from.
type Provenance string

const (
	ProvenanceSelfReported Provenance = "self_reported"
	ProvenancePlatform     Provenance = "platform"
)

// Route type buckets derived from ride distance.
const (
	RouteShort  = "short"
	RouteMedium = "medium"
	RouteLong   = "long"
)

// Time-of-day buckets derived from ride hour.
const (
	BlockMorningRush = "morning_rush"
	BlockMidday      = "midday"
	BlockEveningRush = "evening_rush"
	BlockNight       = "night"
	BlockLateNight   = "late_night"
)

// Observation is one real-world ride as reported by one user (or auto-fed
// from the platform's own completed rides). Numeric fields are pointers so
// that "not reported" is distinguishable from zero; the scorer treats
// missing inputs as neutral rather than as failures.
type Observation struct {
	ID         string `bson:"id" json:"id"`
	UserID     string `bson:"userId" json:"userId"`
	ProviderID string `bson:"providerId" json:"providerId"`
	City       string `bson:"city" json:"city"`
	RouteType  string `bson:"routeType,omitempty" json:"routeType,omitempty"`
	TimeBlock  string `bson:"timeBlock,omitempty" json:"timeBlock,omitempty"`

	RideAt time.Time `bson:"rideAt" json:"rideAt"`

	QuotedPrice       *float64 `bson:"quotedPrice,omitempty" json:"quotedPrice,omitempty"`
	FinalPrice        *float64 `bson:"finalPrice,omitempty" json:"finalPrice,omitempty"`
	QuotedETAMinutes  *float64 `bson:"quotedEtaMinutes,omitempty" json:"quotedEtaMinutes,omitempty"`
	PickupWaitMinutes *float64 `bson:"pickupWaitMinutes,omitempty" json:"pickupWaitMinutes,omitempty"`

	DriverCancelled   *bool `bson:"driverCancelled,omitempty" json:"driverCancelled,omitempty"`
	CancellationCount *int  `bson:"cancellationCount,omitempty" json:"cancellationCount,omitempty"`

	ExpectedDistanceKm  *float64 `bson:"expectedDistanceKm,omitempty" json:"expectedDistanceKm,omitempty"`
	ActualDistanceKm    *float64 `bson:"actualDistanceKm,omitempty" json:"actualDistanceKm,omitempty"`
	ExpectedDurationMin *float64 `bson:"expectedDurationMin,omitempty" json:"expectedDurationMin,omitempty"`
	ActualDurationMin   *float64 `bson:"actualDurationMin,omitempty" json:"actualDurationMin,omitempty"`

	SupportResolved *bool  `bson:"supportResolved,omitempty" json:"supportResolved,omitempty"`
	SupportOutcome  string `bson:"supportOutcome,omitempty" json:"supportOutcome,omitempty"`

	ProofOfRide bool `bson:"proofOfRide" json:"proofOfRide"`

	ScreenshotRef    string     `bson:"screenshotRef,omitempty" json:"screenshotRef,omitempty"`
	NotificationText string     `bson:"notificationText,omitempty" json:"notificationText,omitempty"`
	GPSTrace         []GPSPoint `bson:"gpsTrace,omitempty" json:"gpsTrace,omitempty"`

	Pickup  *LatLng `bson:"pickup,omitempty" json:"pickup,omitempty"`
	Dropoff *LatLng `bson:"dropoff,omitempty" json:"dropoff,omitempty"`

	Provenance  Provenance  `bson:"provenance" json:"provenance"`
	TrustWeight float64     `bson:"trustWeight" json:"trustWeight"`
	FraudFlags  []FraudFlag `bson:"fraudFlags,omitempty" json:"fraudFlags,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// LatLng is a plain coordinate pair.
type LatLng struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// GPSPoint is one sample of a ride's GPS trace.
type GPSPoint struct {
	Latitude  float64   `bson:"latitude" json:"latitude"`
	Longitude float64   `bson:"longitude" json:"longitude"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Support outcome values recognised by the scorer.
const (
	OutcomeFullRefund    = "full_refund"
	OutcomePartialRefund = "partial_refund"
	OutcomeApologyCredit = "apology_credit"
	OutcomeResolved      = "resolved"
	OutcomeDenied        = "denied"
	OutcomeNoResponse    = "no_response"
)
