package aggregateRepo

import (
	"context"

	"travony/models"
)

// AggregateRepository defines data access for the aggregation cache. One
// row exists per (provider, city, timeBlock-or-empty, routeType-or-empty)
// context; rows are replaced wholesale on recomputation.
type AggregateRepository interface {
	// Upsert fully replaces the cache row for the aggregate's context.
	Upsert(ctx context.Context, agg *models.ProviderAggregate) error
	// Delete removes the cache row for a context, if present. Used when a
	// context drops below the minimum sample count.
	Delete(ctx context.Context, providerID, city, timeBlock, routeType string) error
	// GetByContext returns all provider rows for a (city, timeBlock,
	// routeType) context sorted by average total score descending.
	GetByContext(ctx context.Context, city, timeBlock, routeType string) ([]models.ProviderAggregate, error)
}
