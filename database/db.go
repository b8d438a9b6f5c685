package database

import (
	"context"
	"fmt"
	"time"

	"commit/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names.
const (
	UsersCollection        = "users"
	ProvidersCollection    = "providers"
	BookingsCollection     = "bookings"
	ChatSessionsCollection = "chat_sessions"
	ChatMessagesCollection = "chat_messages"
)

// Connect opens and pings a MongoDB client for cfg.DatabaseURL.
// The caller owns the client and must Disconnect it.
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.DatabaseURL).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	logger.Info("Connected to MongoDB", zap.String("db", cfg.DBName))
	return client, nil
}
