package chat

import (
	"context"
	"errors"
	"time"

	chatRepo "commit/database/repository/chat"
	"commit/models"

	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("sessione non trovata")
	ErrSessionEnded    = errors.New("sessione terminata")
	ErrEmptyMessage    = errors.New("messaggio vuoto")
)

// TurnProcessor produces the assistant's reply to one user message.
type TurnProcessor interface {
	ProcessMessage(ctx context.Context, sessionID, utterance string, caller models.Caller) models.AssistantResponse
}

type ChatService interface {
	Start(ctx context.Context, caller models.Caller) (*models.ChatSession, error)
	// SendMessage opens a session when sessionID is empty.
	SendMessage(ctx context.Context, caller models.Caller, sessionID, text string) (*models.ChatReply, error)
	History(ctx context.Context, caller models.Caller, sessionID string) ([]models.ChatMessage, error)
	End(ctx context.Context, caller models.Caller, sessionID string) error
	// ExpireIdle soft-ends sessions with no activity for idle.
	ExpireIdle(ctx context.Context, idle time.Duration) (int64, error)
}

type DefaultChatService struct {
	Repo      chatRepo.ChatRepository
	Assistant TurnProcessor
	Logger    *zap.Logger
}
