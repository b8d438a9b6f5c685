package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"commit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultListLimit = 50

type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(coll *mongo.Collection, logger *zap.Logger) BookingRepository {
	repo := &MongoBookingRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoBookingRepo) ListForUser(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	query, ok := ownerFilter(f)
	if !ok {
		return []models.Booking{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "booking_date", Value: -1}}).
		SetLimit(int64(limit))
	if f.Skip > 0 {
		opts.SetSkip(int64(f.Skip))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", f.UserID, err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ownerFilter builds the query for f. It returns false when the caller's
// role owns no bookings.
func ownerFilter(f BookingFilter) (bson.M, bool) {
	var query bson.M
	switch f.UserType {
	case models.UserTypeCustomer:
		query = bson.M{"customer_id": f.UserID}
	case models.UserTypeProvider:
		query = bson.M{"provider_id": f.UserID}
	default:
		return nil, false
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	return query, true
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "booking_date", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}, {Key: "booking_date", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
