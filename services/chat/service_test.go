package chat

import (
	"context"
	"testing"
	"time"

	chatRepo "commit/database/repository/chat"
	"commit/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memChatRepo struct {
	sessions map[string]*models.ChatSession
	messages []models.ChatMessage
	cutoff   time.Time
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{sessions: map[string]*models.ChatSession{}}
}

func (r *memChatRepo) CreateSession(_ context.Context, s *models.ChatSession) error {
	s.ID = uuid.New().String()
	s.IsActive = true
	s.StartedAt = time.Now()
	s.LastActivity = s.StartedAt
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *memChatRepo) GetSession(_ context.Context, id string) (*models.ChatSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, chatRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memChatRepo) GetContext(_ context.Context, id string) (map[string]any, error) {
	return map[string]any{}, nil
}

func (r *memChatRepo) SetContextFields(context.Context, string, map[string]any) error {
	return nil
}

func (r *memChatRepo) EndSession(_ context.Context, id string, at time.Time) error {
	s, ok := r.sessions[id]
	if !ok {
		return chatRepo.ErrNotFound
	}
	s.IsActive = false
	s.EndedAt = &at
	return nil
}

func (r *memChatRepo) SaveMessage(_ context.Context, msg *models.ChatMessage) error {
	msg.ID = uuid.New().String()
	msg.Timestamp = time.Now()
	r.messages = append(r.messages, *msg)
	if s, ok := r.sessions[msg.SessionID]; ok {
		s.MessageCount++
	}
	return nil
}

func (r *memChatRepo) ListMessages(_ context.Context, sessionID string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for _, m := range r.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memChatRepo) EndIdleSessions(_ context.Context, cutoff time.Time) (int64, error) {
	r.cutoff = cutoff
	var n int64
	for _, s := range r.sessions {
		if s.IsActive && s.LastActivity.Before(cutoff) {
			s.IsActive = false
			n++
		}
	}
	return n, nil
}

type echoAssistant struct {
	calls []string
}

func (a *echoAssistant) ProcessMessage(_ context.Context, sessionID, utterance string, _ models.Caller) models.AssistantResponse {
	a.calls = append(a.calls, sessionID)
	return models.AssistantResponse{
		Content:            "eco: " + utterance,
		Intent:             models.IntentGreeting,
		Entities:           models.Slots{},
		SuggestedActions:   []models.SuggestedAction{},
		SuggestedProviders: []string{},
	}
}

func newTestService() (*DefaultChatService, *memChatRepo, *echoAssistant) {
	repo := newMemChatRepo()
	assistant := &echoAssistant{}
	return &DefaultChatService{Repo: repo, Assistant: assistant, Logger: zap.NewNop()}, repo, assistant
}

var mario = models.Caller{ID: "u1", FullName: "Mario Rossi", UserType: models.UserTypeCustomer}

func TestSendMessageCreatesSession(t *testing.T) {
	svc, repo, assistant := newTestService()

	reply, err := svc.SendMessage(context.Background(), mario, "", "  Ciao!  ")
	require.NoError(t, err)
	require.NotEmpty(t, reply.SessionID)
	assert.Equal(t, "eco: Ciao!", reply.Message.Content)
	assert.Equal(t, []string{reply.SessionID}, assistant.calls)

	require.Len(t, repo.messages, 2)
	assert.Equal(t, models.RoleUser, repo.messages[0].Role)
	assert.Equal(t, "Ciao!", repo.messages[0].Content)
	assert.Equal(t, models.RoleAssistant, repo.messages[1].Role)
	assert.Equal(t, models.IntentGreeting, repo.messages[1].Intent)
	assert.Equal(t, 2, repo.sessions[reply.SessionID].MessageCount)
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.SendMessage(context.Background(), mario, "", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSessionsOfOtherUsersAreHidden(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	session, err := svc.Start(ctx, mario)
	require.NoError(t, err)

	intruder := models.Caller{ID: "u2", UserType: models.UserTypeCustomer}
	_, err = svc.History(ctx, intruder, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.SendMessage(ctx, intruder, session.ID, "ciao")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.End(ctx, intruder, session.ID), ErrSessionNotFound)
}

func TestEndedSessionRejectsMessages(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	session, err := svc.Start(ctx, mario)
	require.NoError(t, err)

	require.NoError(t, svc.End(ctx, mario, session.ID))
	assert.False(t, repo.sessions[session.ID].IsActive)
	assert.NotNil(t, repo.sessions[session.ID].EndedAt)

	_, err = svc.SendMessage(ctx, mario, session.ID, "ciao")
	assert.ErrorIs(t, err, ErrSessionEnded)

	// History stays readable.
	_, err = svc.History(ctx, mario, session.ID)
	assert.NoError(t, err)
}

func TestHistoryOldestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	reply, err := svc.SendMessage(ctx, mario, "", "primo")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, mario, reply.SessionID, "secondo")
	require.NoError(t, err)

	msgs, err := svc.History(ctx, mario, reply.SessionID)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "primo", msgs[0].Content)
	assert.Equal(t, "eco: secondo", msgs[3].Content)
}

func TestUnknownSession(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.History(context.Background(), mario, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExpireIdle(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	old, err := svc.Start(ctx, mario)
	require.NoError(t, err)
	fresh, err := svc.Start(ctx, mario)
	require.NoError(t, err)
	repo.sessions[old.ID].LastActivity = time.Now().Add(-48 * time.Hour)

	n, err := svc.ExpireIdle(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.False(t, repo.sessions[old.ID].IsActive)
	assert.True(t, repo.sessions[fresh.ID].IsActive)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), repo.cutoff, time.Minute)
}
