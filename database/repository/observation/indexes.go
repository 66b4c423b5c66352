package observationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates indexes for the fraud-gate lookups and the
// aggregation context scans.
func (r *MongoObservationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	obsIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.obsColl.Indexes().CreateMany(ctx, obsIdx); err != nil {
		return fmt.Errorf("failed to create observation indexes: %w", err)
	}

	scoreIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "observationId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "city", Value: 1}, {Key: "timeBlock", Value: 1}, {Key: "routeType", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	if _, err := r.scoreColl.Indexes().CreateMany(ctx, scoreIdx); err != nil {
		return fmt.Errorf("failed to create score indexes: %w", err)
	}
	return nil
}
