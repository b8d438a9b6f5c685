package ai

import (
	"context"
	"fmt"
	"time"

	"commit/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	entityKeyPrefix = "entity_"
	lastIntentKey   = "last_intent"
	lastUpdateKey   = "last_update"
)

// ContextStore keeps the accumulated knowledge of each conversation.
type ContextStore interface {
	Get(ctx context.Context, sessionID string) Result[models.SessionContext]
	// Update records the turn's intent and every non-empty slot. Slots that
	// are absent from the update keep their stored value.
	Update(ctx context.Context, sessionID string, intent models.Intent, slots models.Slots) error
}

// SessionContextRepository is the persistence the context store needs.
type SessionContextRepository interface {
	GetContext(ctx context.Context, id string) (map[string]any, error)
	SetContextFields(ctx context.Context, id string, fields map[string]any) error
}

// DocumentContextStore stores context inside the chat session document.
type DocumentContextStore struct {
	repo SessionContextRepository
	now  func() time.Time
}

func NewDocumentContextStore(repo SessionContextRepository) *DocumentContextStore {
	return &DocumentContextStore{repo: repo, now: time.Now}
}

func (s *DocumentContextStore) Get(ctx context.Context, sessionID string) Result[models.SessionContext] {
	raw, err := s.repo.GetContext(ctx, sessionID)
	if err != nil {
		return Failed[models.SessionContext](fmt.Errorf("load context: %w", err))
	}
	return Ok(decodeContext(raw))
}

func (s *DocumentContextStore) Update(ctx context.Context, sessionID string, intent models.Intent, slots models.Slots) error {
	if err := s.repo.SetContextFields(ctx, sessionID, contextFields(intent, slots, s.now())); err != nil {
		return fmt.Errorf("save context: %w", err)
	}
	return nil
}

// contextFields is the partial update for one turn.
func contextFields(intent models.Intent, slots models.Slots, at time.Time) map[string]any {
	fields := map[string]any{
		lastIntentKey: string(intent),
		lastUpdateKey: at.UTC().Format(time.RFC3339),
	}
	for name, v := range slots {
		if v != "" {
			fields[entityKeyPrefix+string(name)] = v
		}
	}
	return fields
}

// decodeContext reads the stored form back. Unknown keys are ignored.
func decodeContext(raw map[string]any) models.SessionContext {
	sc := models.SessionContext{Slots: models.Slots{}}
	for _, name := range models.SlotNames {
		if v := scalarString(raw[entityKeyPrefix+string(name)]); v != "" {
			sc.Slots[name] = v
		}
	}
	if v, ok := raw[lastIntentKey].(string); ok {
		sc.LastIntent = models.Intent(v)
	}
	switch v := raw[lastUpdateKey].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			sc.LastUpdate = t
		}
	case primitive.DateTime:
		sc.LastUpdate = v.Time().UTC()
	case time.Time:
		sc.LastUpdate = v.UTC()
	}
	return sc
}

// contextDocument renders a context the way it is stored, for prompts.
func contextDocument(sc models.SessionContext) map[string]any {
	doc := map[string]any{}
	for name, v := range sc.Slots {
		doc[entityKeyPrefix+string(name)] = v
	}
	if sc.LastIntent != "" {
		doc[lastIntentKey] = string(sc.LastIntent)
	}
	if !sc.LastUpdate.IsZero() {
		doc[lastUpdateKey] = sc.LastUpdate.UTC().Format(time.RFC3339)
	}
	return doc
}
