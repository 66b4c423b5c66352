package aggregateRepo

import (
	"context"
	"fmt"
	"time"

	"travony/database"
	"travony/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoAggregateRepo implements AggregateRepository using MongoDB.
type MongoAggregateRepo struct {
	coll *mongo.Collection
}

// NewMongoAggregateRepo creates a new instance of AggregateRepository using MongoDB.
func NewMongoAggregateRepo() AggregateRepository {
	r := &MongoAggregateRepo{coll: database.DB().Collection("aggregates")}
	if err := r.ensureIndexes(); err != nil {
		zap.L().Warn("aggregate index bootstrap failed", zap.Error(err))
	}
	return r
}

// ContextID builds the composite cache key for a context.
func ContextID(providerID, city, timeBlock, routeType string) string {
	return providerID + "|" + city + "|" + timeBlock + "|" + routeType
}

func (r *MongoAggregateRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "city", Value: 1},
			{Key: "timeBlock", Value: 1},
			{Key: "routeType", Value: 1},
			{Key: "avgTotal", Value: -1},
		}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create aggregate indexes: %w", err)
	}
	return nil
}

func (r *MongoAggregateRepo) Upsert(ctx context.Context, agg *models.ProviderAggregate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	agg.ID = ContextID(agg.ProviderID, agg.City, agg.TimeBlock, agg.RouteType)
	filter := bson.M{"id": agg.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, agg, opts); err != nil {
		return fmt.Errorf("failed to upsert aggregate %s: %w", agg.ID, err)
	}
	return nil
}

func (r *MongoAggregateRepo) Delete(ctx context.Context, providerID, city, timeBlock, routeType string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	id := ContextID(providerID, city, timeBlock, routeType)
	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete aggregate %s: %w", id, err)
	}
	return nil
}

func (r *MongoAggregateRepo) GetByContext(ctx context.Context, city, timeBlock, routeType string) ([]models.ProviderAggregate, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{"city": city, "timeBlock": timeBlock, "routeType": routeType}
	opts := options.Find().SetSort(bson.D{{Key: "avgTotal", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregates for %s: %w", city, err)
	}
	defer cursor.Close(ctx)
	var aggs []models.ProviderAggregate
	if err := cursor.All(ctx, &aggs); err != nil {
		return nil, fmt.Errorf("failed to decode aggregates: %w", err)
	}
	return aggs, nil
}
