package models

import "time"

// ChatRole is the author of a chat turn.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatSession is one conversation between a user and the assistant.
// Sessions are never deleted; ending one only clears IsActive.
type ChatSession struct {
	ID           string         `bson:"id" json:"session_id"`
	UserID       string         `bson:"user_id" json:"user_id"`
	UserType     UserType       `bson:"user_type" json:"user_type"`
	Context      map[string]any `bson:"context" json:"context"`
	MessageCount int            `bson:"message_count" json:"message_count"`
	IsActive     bool           `bson:"is_active" json:"is_active"`
	StartedAt    time.Time      `bson:"started_at" json:"started_at"`
	LastActivity time.Time      `bson:"last_activity" json:"last_activity"`
	EndedAt      *time.Time     `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
}

// ChatMessage is a single immutable turn within a session.
type ChatMessage struct {
	ID                 string            `bson:"id" json:"id"`
	SessionID          string            `bson:"session_id" json:"session_id"`
	UserID             string            `bson:"user_id" json:"user_id"`
	Role               ChatRole          `bson:"role" json:"role"`
	Content            string            `bson:"content" json:"content"`
	Timestamp          time.Time         `bson:"timestamp" json:"timestamp"`
	Intent             Intent            `bson:"intent,omitempty" json:"intent,omitempty"`
	Entities           Slots             `bson:"entities,omitempty" json:"entities,omitempty"`
	SuggestedActions   []SuggestedAction `bson:"suggested_actions,omitempty" json:"suggested_actions,omitempty"`
	SuggestedProviders []string          `bson:"suggested_providers,omitempty" json:"suggested_providers,omitempty"`
}

// ChatMessageRequest is the payload for POST /chat/message.
type ChatMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// ChatReply is returned for every processed user message.
type ChatReply struct {
	SessionID string            `json:"session_id"`
	Message   AssistantResponse `json:"message"`
}
