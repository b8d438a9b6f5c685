package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	chatRepo "commit/database/repository/chat"
	"commit/models"

	"go.uber.org/zap"
)

func (s *DefaultChatService) Start(ctx context.Context, caller models.Caller) (*models.ChatSession, error) {
	session := &models.ChatSession{
		UserID:   caller.ID,
		UserType: caller.UserType,
		Context:  map[string]any{},
	}
	if err := s.Repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("start chat: %w", err)
	}
	s.Logger.Info("Chat session started", zap.String("session_id", session.ID), zap.String("user_id", caller.ID))
	return session, nil
}

func (s *DefaultChatService) SendMessage(ctx context.Context, caller models.Caller, sessionID, text string) (*models.ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if sessionID == "" {
		session, err := s.Start(ctx, caller)
		if err != nil {
			return nil, err
		}
		sessionID = session.ID
	} else {
		session, err := s.ownedSession(ctx, caller, sessionID)
		if err != nil {
			return nil, err
		}
		if !session.IsActive {
			return nil, ErrSessionEnded
		}
	}

	userTurn := &models.ChatMessage{
		SessionID: sessionID,
		UserID:    caller.ID,
		Role:      models.RoleUser,
		Content:   text,
	}
	if err := s.Repo.SaveMessage(ctx, userTurn); err != nil {
		s.Logger.Error("failed to save user message", zap.String("session_id", sessionID), zap.Error(err))
	}

	resp := s.Assistant.ProcessMessage(ctx, sessionID, text, caller)

	assistantTurn := &models.ChatMessage{
		SessionID:          sessionID,
		UserID:             caller.ID,
		Role:               models.RoleAssistant,
		Content:            resp.Content,
		Intent:             resp.Intent,
		Entities:           resp.Entities,
		SuggestedActions:   resp.SuggestedActions,
		SuggestedProviders: resp.SuggestedProviders,
	}
	if err := s.Repo.SaveMessage(ctx, assistantTurn); err != nil {
		s.Logger.Error("failed to save assistant message", zap.String("session_id", sessionID), zap.Error(err))
	}

	return &models.ChatReply{SessionID: sessionID, Message: resp}, nil
}

func (s *DefaultChatService) History(ctx context.Context, caller models.Caller, sessionID string) ([]models.ChatMessage, error) {
	if _, err := s.ownedSession(ctx, caller, sessionID); err != nil {
		return nil, err
	}
	msgs, err := s.Repo.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	return msgs, nil
}

func (s *DefaultChatService) End(ctx context.Context, caller models.Caller, sessionID string) error {
	session, err := s.ownedSession(ctx, caller, sessionID)
	if err != nil {
		return err
	}
	if !session.IsActive {
		return nil
	}
	if err := s.Repo.EndSession(ctx, sessionID, time.Now().UTC()); err != nil {
		return fmt.Errorf("end chat: %w", err)
	}
	s.Logger.Info("Chat session ended", zap.String("session_id", sessionID))
	return nil
}

func (s *DefaultChatService) ExpireIdle(ctx context.Context, idle time.Duration) (int64, error) {
	n, err := s.Repo.EndIdleSessions(ctx, time.Now().UTC().Add(-idle))
	if err != nil {
		return 0, fmt.Errorf("expire idle chats: %w", err)
	}
	return n, nil
}

// ownedSession loads the session and hides sessions of other users.
func (s *DefaultChatService) ownedSession(ctx context.Context, caller models.Caller, sessionID string) (*models.ChatSession, error) {
	session, err := s.Repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, chatRepo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load chat session: %w", err)
	}
	if session.UserID != caller.ID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
