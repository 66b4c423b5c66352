package observationRepo

import (
	"context"
	"fmt"
	"time"

	"travony/database"
	"travony/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoObservationRepo implements ObservationRepository using MongoDB.
type MongoObservationRepo struct {
	obsColl     *mongo.Collection
	scoreColl   *mongo.Collection
	consentColl *mongo.Collection
}

// NewMongoObservationRepo creates a new instance of ObservationRepository using MongoDB.
func NewMongoObservationRepo() ObservationRepository {
	db := database.DB()
	r := &MongoObservationRepo{
		obsColl:     db.Collection("observations"),
		scoreColl:   db.Collection("scores"),
		consentColl: db.Collection("consents"),
	}
	if err := r.EnsureIndexes(); err != nil {
		zap.L().Warn("observation index bootstrap failed", zap.Error(err))
	}
	return r
}

func (r *MongoObservationRepo) CreateObservation(ctx context.Context, obs *models.Observation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if obs.ID == "" {
		obs.ID = uuid.New().String()
	}
	obs.CreatedAt = time.Now()
	if _, err := r.obsColl.InsertOne(ctx, obs); err != nil {
		return "", fmt.Errorf("failed to create observation: %w", err)
	}
	return obs.ID, nil
}

func (r *MongoObservationRepo) GetObservationByID(ctx context.Context, id string) (*models.Observation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var obs models.Observation
	if err := r.obsColl.FindOne(ctx, bson.M{"id": id}).Decode(&obs); err != nil {
		return nil, fmt.Errorf("failed to fetch observation with id %s: %w", id, err)
	}
	return &obs, nil
}

func (r *MongoObservationRepo) UpsertScore(ctx context.Context, score *models.Score) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if score.ID == "" {
		score.ID = uuid.New().String()
	}
	score.CreatedAt = time.Now()
	filter := bson.M{"observationId": score.ObservationID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.scoreColl.ReplaceOne(ctx, filter, score, opts); err != nil {
		return fmt.Errorf("failed to upsert score for observation %s: %w", score.ObservationID, err)
	}
	return nil
}

func (r *MongoObservationRepo) GetScoreByObservationID(ctx context.Context, observationID string) (*models.Score, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var score models.Score
	filter := bson.M{"observationId": observationID}
	err := r.scoreColl.FindOne(ctx, filter).Decode(&score)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch score for observation %s: %w", observationID, err)
	}
	return &score, nil
}

// PurgeUserData removes all scores and observations of a user plus the
// consent record in one transaction. A partial failure rolls the whole
// cascade back so no score can outlive its observation.
func (r *MongoObservationRepo) PurgeUserData(ctx context.Context, userID string) (int64, error) {
	client := r.obsColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return 0, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var deleted int64
	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.scoreColl.DeleteMany(sc, bson.M{"userId": userID}); err != nil {
			return fmt.Errorf("delete scores failed: %w", err)
		}
		res, err := r.obsColl.DeleteMany(sc, bson.M{"userId": userID})
		if err != nil {
			return fmt.Errorf("delete observations failed: %w", err)
		}
		deleted = res.DeletedCount
		if _, err := r.consentColl.DeleteOne(sc, bson.M{"userId": userID}); err != nil {
			return fmt.Errorf("delete consent record failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return 0, fmt.Errorf("user data purge failed: %w", err)
	}

	return deleted, nil
}
