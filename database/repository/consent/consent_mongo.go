package consentRepo

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

// MongoConsentRepo implements ConsentRepository using MongoDB.
type MongoConsentRepo struct {
	coll *mongo.Collection
}

// NewMongoConsentRepo creates a new instance of ConsentRepository using MongoDB.
func NewMongoConsentRepo() ConsentRepository {
	r := &MongoConsentRepo{coll: database.DB().Collection("consents")}
	if err := r.ensureIndexes(); err != nil {
		zap.L().Warn("consent index bootstrap failed", zap.Error(err))
	}
	return r
}

func (r *MongoConsentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("failed to create consent index: %w", err)
	}
	return nil
}

func (r *MongoConsentRepo) Upsert(ctx context.Context, record *models.ConsentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{"userId": record.UserID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("failed to upsert consent record for user %s: %w", record.UserID, err)
	}
	return nil
}

func (r *MongoConsentRepo) GetByUserID(ctx context.Context, userID string) (*models.ConsentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var record models.ConsentRecord
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch consent record for user %s: %w", userID, err)
	}
	return &record, nil
}

func (r *MongoConsentRepo) Revoke(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	now := time.Now()
	update := bson.M{"$set": bson.M{"status": models.ConsentRevoked, "revokedAt": now}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to revoke consent for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("consent record for user %s not found", userID)
	}
	return nil
}
