package truth

import (
	"context"
	"time"

	"travony/database/repository"
	"travony/models"
	"travony/services/extraction"
)

// Engine is the Ride Truth Engine: a crowd-sourced, fraud-resistant
// scoring and recommendation service over self-reported ride
// observations. The engine is stateless aside from the persisted rows;
// every aggregation is recomputed from the canonical observation set,
// which makes concurrent writes converge without locking.
type Engine interface {
	// GrantConsent upserts a granted consent record for the user.
	GrantConsent(ctx context.Context, userID string, caps models.ConsentCapabilities) error
	// CheckConsent reports whether the user has an active granted record.
	CheckConsent(ctx context.Context, userID string) (bool, error)
	// RevokeConsent flips the user's record to revoked. Existing
	// observations are untouched.
	RevokeConsent(ctx context.Context, userID string) error
	// DeleteUserData removes all of the user's scores, observations and
	// the consent record in one atomic cascade. Returns the number of
	// deleted observations.
	DeleteUserData(ctx context.Context, userID string) (int64, error)

	// SubmitObservation runs a self-reported ride through the full
	// pipeline: consent gate, signal normalization, fraud gate, scoring
	// and aggregation refresh.
	SubmitObservation(ctx context.Context, userID, providerName, city string, signals models.RawSignals) (*models.SubmissionResult, error)
	// AutoFeed converts one of the platform's own completed rides into a
	// full-trust observation, skipping the fraud gate.
	AutoFeed(ctx context.Context, ride models.PlatformRide) (*models.SubmissionResult, error)
	// GetScore returns the stored score of an observation.
	GetScore(ctx context.Context, observationID string) (*models.Score, error)

	// GetRankings returns the contextual provider ranking plus a
	// data-sufficiency message.
	GetRankings(ctx context.Context, city, timeBlock, routeType string) (*models.RankingsResult, error)
	// GetRecommendation returns the single best provider for a context,
	// or nil when no provider clears the confidence gate.
	GetRecommendation(ctx context.Context, city, timeBlock, routeType string) (*models.Recommendation, error)
}

// DefaultTruthEngine implements Engine on top of the Mongo repositories,
// the Redis rankings cache and the optional screenshot extractor.
type DefaultTruthEngine struct {
	Providers    repository.ProviderRepository
	Observations repository.ObservationRepository
	Consents     repository.ConsentRepository
	Aggregates   repository.AggregateRepository

	// Extractor is optional; when nil, screenshot signals must arrive
	// pre-parsed from the client.
	Extractor extraction.ScreenshotExtractor
	// Rankings is the optional Redis read cache for contextual rankings.
	Rankings *RankingsCache

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (e *DefaultTruthEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultTruthEngine) gate() *FraudGate {
	return &FraudGate{Observations: e.Observations, Now: e.Now}
}
