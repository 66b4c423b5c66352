package models

import "time"

// SignalPatch is a partial observation produced by one signal source.
// Sources are merged in a fixed precedence order; nil fields never
// overwrite values from an earlier source.
type SignalPatch struct {
	RideAt              *time.Time `json:"rideAt,omitempty"`
	QuotedPrice         *float64   `json:"quotedPrice,omitempty"`
	FinalPrice          *float64   `json:"finalPrice,omitempty"`
	QuotedETAMinutes    *float64   `json:"quotedEtaMinutes,omitempty"`
	PickupWaitMinutes   *float64   `json:"pickupWaitMinutes,omitempty"`
	DriverCancelled     *bool      `json:"driverCancelled,omitempty"`
	CancellationCount   *int       `json:"cancellationCount,omitempty"`
	ExpectedDistanceKm  *float64   `json:"expectedDistanceKm,omitempty"`
	ActualDistanceKm    *float64   `json:"actualDistanceKm,omitempty"`
	ExpectedDurationMin *float64   `json:"expectedDurationMin,omitempty"`
	ActualDurationMin   *float64   `json:"actualDurationMin,omitempty"`
	SupportResolved     *bool      `json:"supportResolved,omitempty"`
	SupportOutcome      string     `json:"supportOutcome,omitempty"`
	Pickup              *LatLng    `json:"pickup,omitempty"`
	Dropoff             *LatLng    `json:"dropoff,omitempty"`
}

// ScreenshotSignal carries a fare screenshot reference plus the fields
// extracted from it (by the extraction collaborator or client-side OCR).
type ScreenshotSignal struct {
	Reference string      `json:"reference,omitempty"`
	Text      string      `json:"text,omitempty"` // raw OCR text, if extraction runs server-side
	Fields    SignalPatch `json:"fields"`
}

// NotificationSignal carries a parsed ride notification.
type NotificationSignal struct {
	Text   string      `json:"text,omitempty"`
	Fields SignalPatch `json:"fields"`
}

// PostRideAnswers are the user's explicit post-ride corrections. Only the
// fields the user actually answered are applied; they win over every
// automated source.
type PostRideAnswers struct {
	CorrectedQuotedPrice *float64 `json:"correctedQuotedPrice,omitempty"`
	CorrectedFinalPrice  *float64 `json:"correctedFinalPrice,omitempty"`
	DriverCancelled      *bool    `json:"driverCancelled,omitempty"`
	CancellationCount    *int     `json:"cancellationCount,omitempty"`
	LateArrivalMinutes   *float64 `json:"lateArrivalMinutes,omitempty"`
	SupportResolved      *bool    `json:"supportResolved,omitempty"`
	SupportOutcome       string   `json:"supportOutcome,omitempty"`
}

// RawSignals bundles every signal fragment one submission may carry.
type RawSignals struct {
	Screenshot   *ScreenshotSignal   `json:"screenshot,omitempty"`
	Notification *NotificationSignal `json:"notification,omitempty"`
	UserAnswers  *PostRideAnswers    `json:"userAnswers,omitempty"`
	GPSTrace     []GPSPoint          `json:"gpsTrace,omitempty"`
	RideAt       *time.Time          `json:"rideAt,omitempty"`
	ProofOfRide  bool                `json:"proofOfRide,omitempty"`
}

// PlatformRide is a completed ride from the platform's own dispatch
// records, fed into the truth engine at full trust.
type PlatformRide struct {
	RideID              string     `json:"rideId" binding:"required"`
	UserID              string     `json:"userId" binding:"required"`
	ProviderName        string     `json:"providerName" binding:"required"`
	City                string     `json:"city" binding:"required"`
	CompletedAt         time.Time  `json:"completedAt"`
	QuotedPrice         *float64   `json:"quotedPrice,omitempty"`
	FinalPrice          *float64   `json:"finalPrice,omitempty"`
	QuotedETAMinutes    *float64   `json:"quotedEtaMinutes,omitempty"`
	PickupWaitMinutes   *float64   `json:"pickupWaitMinutes,omitempty"`
	DriverCancelled     *bool      `json:"driverCancelled,omitempty"`
	CancellationCount   *int       `json:"cancellationCount,omitempty"`
	ExpectedDistanceKm  *float64   `json:"expectedDistanceKm,omitempty"`
	ActualDistanceKm    *float64   `json:"actualDistanceKm,omitempty"`
	ExpectedDurationMin *float64   `json:"expectedDurationMin,omitempty"`
	ActualDurationMin   *float64   `json:"actualDurationMin,omitempty"`
	Pickup              *LatLng    `json:"pickup,omitempty"`
	Dropoff             *LatLng    `json:"dropoff,omitempty"`
}

// SubmissionResult is what the engine returns for an accepted observation.
type SubmissionResult struct {
	ObservationID string      `json:"observationId"`
	Total         float64     `json:"total"`
	Breakdown     Breakdown   `json:"breakdown"`
	Explanation   string      `json:"explanation"`
	FraudFlags    []FraudFlag `json:"fraudFlags,omitempty"`
	TrustWeight   float64     `json:"trustWeight"`
}

// Breakdown exposes the five sub-scores of a PRTS score.
type Breakdown struct {
	PriceIntegrity       float64 `json:"priceIntegrity"`
	PickupReliability    float64 `json:"pickupReliability"`
	CancellationBehavior float64 `json:"cancellationBehavior"`
	RouteIntegrity       float64 `json:"routeIntegrity"`
	SupportResolution    float64 `json:"supportResolution"`
}
