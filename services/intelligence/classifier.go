package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"commit/models"

	"github.com/spf13/cast"
)

var (
	errSlotsNotObject = errors.New("slot extraction did not return a JSON object")
	errNoSlotKeys     = errors.New("slot extraction returned none of the known slots")
)

// DefaultCompletionTimeout bounds every completion call.
const DefaultCompletionTimeout = 20 * time.Second

// Classifier maps an utterance to an intent label and a slot map.
type Classifier struct {
	completer Completer
	timeout   time.Duration
}

func NewClassifier(completer Completer) *Classifier {
	return &Classifier{completer: completer, timeout: DefaultCompletionTimeout}
}

// Classify always yields a label from models.Intents on success; unknown
// output is mapped to IntentOther.
func (c *Classifier) Classify(ctx context.Context, utterance string) Result[models.Intent] {
	out := complete(ctx, c.completer, c.timeout, CompletionRequest{
		System:      intentSystemPrompt,
		Prompt:      intentPrompt(utterance),
		Temperature: 0,
		MaxTokens:   10,
	})
	if out.Err != nil {
		return Failed[models.Intent](fmt.Errorf("classify intent: %w", out.Err))
	}
	return Ok(models.ParseIntent(strings.ToLower(strings.TrimSpace(out.Value))))
}

// ExtractSlots asks for a JSON object of slot values. Malformed output is a
// failed Result.
func (c *Classifier) ExtractSlots(ctx context.Context, utterance string) Result[models.Slots] {
	out := complete(ctx, c.completer, c.timeout, CompletionRequest{
		System:      slotsSystemPrompt,
		Prompt:      slotsPrompt(utterance),
		Temperature: 0,
		MaxTokens:   200,
	})
	if out.Err != nil {
		return Failed[models.Slots](fmt.Errorf("extract slots: %w", out.Err))
	}
	slots, err := parseSlots(out.Value)
	if err != nil {
		return Failed[models.Slots](fmt.Errorf("extract slots: %w", err))
	}
	return Ok(slots)
}

// parseSlots decodes the completion into Slots. Scalars are stringified,
// nulls, blanks and nested values are dropped.
func parseSlots(raw string) (models.Slots, error) {
	var decoded any
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &decoded); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, errSlotsNotObject
	}

	slots := models.Slots{}
	known := 0
	for _, name := range models.SlotNames {
		v, present := obj[string(name)]
		if !present {
			continue
		}
		known++
		if s := scalarString(v); s != "" {
			slots[name] = s
		}
	}
	if known == 0 {
		return nil, errNoSlotKeys
	}
	return slots, nil
}

func scalarString(v any) string {
	switch v.(type) {
	case nil, map[string]any, []any:
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func complete(ctx context.Context, c Completer, timeout time.Duration, req CompletionRequest) Result[string] {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return resultOf(c.Complete(ctx, req))
}
