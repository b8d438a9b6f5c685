package providerRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"commit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultSearchLimit applies when criteria.Limit is not positive.
const DefaultSearchLimit = 20

func (r *MongoProviderRepo) Search(ctx context.Context, criteria ProviderSearchCriteria) ([]models.Provider, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	limit := criteria.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(int64(limit))
	if criteria.Skip > 0 {
		opts.SetSkip(int64(criteria.Skip))
	}

	cursor, err := r.coll.Find(ctx, buildSearchFilter(criteria), opts)
	if err != nil {
		return nil, fmt.Errorf("provider search failed: %w", err)
	}
	defer cursor.Close(ctx)

	providers := []models.Provider{}
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

// buildSearchFilter turns criteria into a Mongo filter. Only active providers
// are ever returned.
func buildSearchFilter(criteria ProviderSearchCriteria) bson.M {
	filter := bson.M{"is_active": true}
	if criteria.Category != "" {
		filter["service_category"] = criteria.Category
	}
	if criteria.City != "" {
		filter["address.city"] = bson.M{"$regex": regexp.QuoteMeta(criteria.City), "$options": "i"}
	}
	if len(criteria.Tags) > 0 {
		filter["tags"] = bson.M{"$in": criteria.Tags}
	}
	if criteria.MinRating > 0 {
		filter["rating"] = bson.M{"$gte": criteria.MinRating}
	}
	return filter
}
