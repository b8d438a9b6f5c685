package chatRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commit/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoChatRepo stores sessions and messages in two collections.
type MongoChatRepo struct {
	sessions *mongo.Collection
	messages *mongo.Collection
}

func NewMongoChatRepo(sessions, messages *mongo.Collection, logger *zap.Logger) ChatRepository {
	repo := &MongoChatRepo{sessions: sessions, messages: messages}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create chat indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoChatRepo) CreateSession(ctx context.Context, s *models.ChatSession) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	s.StartedAt = now
	s.LastActivity = now
	s.IsActive = true
	if s.Context == nil {
		s.Context = map[string]any{}
	}
	if _, err := r.sessions.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}
	return nil
}

func (r *MongoChatRepo) GetSession(ctx context.Context, id string) (*models.ChatSession, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var s models.ChatSession
	if err := r.sessions.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat session %s: %w", id, err)
	}
	return &s, nil
}

func (r *MongoChatRepo) GetContext(ctx context.Context, id string) (map[string]any, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		Context map[string]any `bson:"context"`
	}
	opts := options.FindOne().SetProjection(bson.M{"context": 1})
	if err := r.sessions.FindOne(ctx, bson.M{"id": id}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch context of session %s: %w", id, err)
	}
	if doc.Context == nil {
		doc.Context = map[string]any{}
	}
	return doc.Context, nil
}

func (r *MongoChatRepo) SetContextFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	for k, v := range fields {
		set["context."+k] = v
	}
	res, err := r.sessions.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update context of session %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoChatRepo) EndSession(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.sessions.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"is_active": false, "ended_at": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to end chat session %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoChatRepo) SaveMessage(ctx context.Context, msg *models.ChatMessage) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}

	_, err := r.sessions.UpdateOne(ctx,
		bson.M{"id": msg.SessionID},
		bson.M{
			"$inc": bson.M{"message_count": 1},
			"$set": bson.M{"last_activity": msg.Timestamp},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to bump message count of session %s: %w", msg.SessionID, err)
	}
	return nil
}

func (r *MongoChatRepo) ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages of session %s: %w", sessionID, err)
	}
	defer cursor.Close(ctx)

	msgs := []models.ChatMessage{}
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}
	return msgs, nil
}

func (r *MongoChatRepo) EndIdleSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := newContext(ctx, 30*time.Second)
	defer cancel()

	res, err := r.sessions.UpdateMany(ctx,
		bson.M{"is_active": true, "last_activity": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"is_active": false, "ended_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to end idle sessions: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoChatRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	sessionIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "started_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "last_activity", Value: 1}}},
	}
	if _, err := r.sessions.Indexes().CreateMany(ctx, sessionIdx); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	messageIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: 1}}},
	}
	if _, err := r.messages.Indexes().CreateMany(ctx, messageIdx); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}
