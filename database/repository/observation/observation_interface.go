package observationRepo

import (
	"context"
	"time"

	"travony/models"
)

// ScoreFilter selects scores for one aggregation context. Empty TimeBlock
// or RouteType means "any".
type ScoreFilter struct {
	ProviderID string
	City       string
	TimeBlock  string
	RouteType  string
}

// ObservationRepository defines data access for observations and their
// one-to-one scores. Both collections live behind one repository so the
// user-data purge can span them in a single transaction.
type ObservationRepository interface {
	// CreateObservation inserts a new observation and returns its ID.
	CreateObservation(ctx context.Context, obs *models.Observation) (string, error)
	// GetObservationByID returns an observation by its ID.
	GetObservationByID(ctx context.Context, id string) (*models.Observation, error)

	// CountByProviderCity counts all observations for a (provider, city) pair.
	CountByProviderCity(ctx context.Context, providerID, city string) (int64, error)
	// CountByUserProviderCity counts one user's observations for a (provider, city) pair.
	CountByUserProviderCity(ctx context.Context, userID, providerID, city string) (int64, error)
	// CountByUserSince counts one user's observations created after the given time.
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error)
	// HasRecentSubmission reports whether the user submitted an observation
	// for the provider after the given time.
	HasRecentSubmission(ctx context.Context, userID, providerID string, since time.Time) (bool, error)

	// UpsertScore stores the score for an observation, replacing any prior row.
	UpsertScore(ctx context.Context, score *models.Score) error
	// GetScoreByObservationID returns the score of an observation.
	GetScoreByObservationID(ctx context.Context, observationID string) (*models.Score, error)
	// ListScoresByContext returns every score matching the filter.
	ListScoresByContext(ctx context.Context, filter ScoreFilter) ([]models.Score, error)
	// ListProviderIDsByCity returns the distinct provider IDs with at least
	// one score in the city.
	ListProviderIDsByCity(ctx context.Context, city string) ([]string, error)

	// PurgeUserData deletes all scores and observations of a user plus the
	// user's consent record, atomically. Returns the number of deleted
	// observations.
	PurgeUserData(ctx context.Context, userID string) (int64, error)
}
