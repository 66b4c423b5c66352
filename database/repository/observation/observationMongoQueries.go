package observationRepo

import (
	"context"
	"fmt"
	"time"

	"travony/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoObservationRepo) CountByProviderCity(ctx context.Context, providerID, city string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{"providerId": providerID, "city": city}
	count, err := r.obsColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count observations for provider %s in %s: %w", providerID, city, err)
	}
	return count, nil
}

func (r *MongoObservationRepo) CountByUserProviderCity(ctx context.Context, userID, providerID, city string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{"userId": userID, "providerId": providerID, "city": city}
	count, err := r.obsColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count user observations: %w", err)
	}
	return count, nil
}

func (r *MongoObservationRepo) CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{"userId": userID, "createdAt": bson.M{"$gte": since}}
	count, err := r.obsColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent user observations: %w", err)
	}
	return count, nil
}

func (r *MongoObservationRepo) HasRecentSubmission(ctx context.Context, userID, providerID string, since time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{
		"userId":     userID,
		"providerId": providerID,
		"createdAt":  bson.M{"$gte": since},
	}
	count, err := r.obsColl.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check recent submissions: %w", err)
	}
	return count > 0, nil
}

func (r *MongoObservationRepo) ListScoresByContext(ctx context.Context, filter ScoreFilter) ([]models.Score, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	query := bson.M{"providerId": filter.ProviderID, "city": filter.City}
	if filter.TimeBlock != "" {
		query["timeBlock"] = filter.TimeBlock
	}
	if filter.RouteType != "" {
		query["routeType"] = filter.RouteType
	}
	cursor, err := r.scoreColl.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer cursor.Close(ctx)
	var scores []models.Score
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	return scores, nil
}

func (r *MongoObservationRepo) ListProviderIDsByCity(ctx context.Context, city string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	raw, err := r.scoreColl.Distinct(ctx, "providerId", bson.M{"city": city})
	if err != nil {
		return nil, fmt.Errorf("failed to list providers for city %s: %w", city, err)
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
