package chatRepo

import (
	"context"
	"errors"
	"time"

	"commit/models"
)

// ErrNotFound is returned when the session does not exist.
var ErrNotFound = errors.New("chat session not found")

// ChatRepository persists chat sessions and their turns.
type ChatRepository interface {
	CreateSession(ctx context.Context, session *models.ChatSession) error
	GetSession(ctx context.Context, id string) (*models.ChatSession, error)
	// GetContext returns the raw context document of a session.
	GetContext(ctx context.Context, id string) (map[string]any, error)
	// SetContextFields sets each key of fields under context.<key> in a
	// single update.
	SetContextFields(ctx context.Context, id string, fields map[string]any) error
	EndSession(ctx context.Context, id string, at time.Time) error
	// SaveMessage appends a turn and bumps the session's message_count.
	SaveMessage(ctx context.Context, msg *models.ChatMessage) error
	// ListMessages returns a session's turns, oldest first.
	ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	// EndIdleSessions soft-ends active sessions idle since before cutoff.
	EndIdleSessions(ctx context.Context, cutoff time.Time) (int64, error)
}
