package providerRepo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"travony/database"
	"travony/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	r := &MongoProviderRepo{coll: database.DB().Collection("providers")}
	if err := r.EnsureIndexes(); err != nil {
		zap.L().Warn("provider index bootstrap failed", zap.Error(err))
	}
	return r
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var provider models.Provider
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetByName(ctx context.Context, name string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var provider models.Provider
	filter := bson.M{"name": bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"}}
	err := r.coll.FindOne(ctx, filter).Decode(&provider)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider %q: %w", name, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetOrCreateByName(ctx context.Context, name string) (*models.Provider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("provider name is empty")
	}
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	provider := &models.Provider{
		ID:        uuid.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := r.Create(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

func (r *MongoProviderRepo) GetAll(ctx context.Context) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve providers: %w", err)
	}
	defer cursor.Close(ctx)
	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) Update(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{"id": provider.ID}
	update := bson.M{"$set": provider}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", provider.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s not found", provider.ID)
	}
	return nil
}
