package ai

import (
	"context"
	"math/rand"
	"time"

	bookingRepo "commit/database/repository/booking"
	providerRepo "commit/database/repository/provider"
	"commit/models"

	"go.uber.org/zap"
)

const (
	dispatchFailureReply = "Mi dispiace, non sono riuscito a elaborare la tua richiesta. Puoi riformularla?"
	turnFailureReply     = "Mi dispiace, si è verificato un errore. Riprova tra poco."
)

// ProviderQuery lists providers for the handlers.
type ProviderQuery interface {
	Search(ctx context.Context, criteria providerRepo.ProviderSearchCriteria) ([]models.Provider, error)
}

// BookingQuery lists a caller's bookings for the handlers.
type BookingQuery interface {
	ListForUser(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error)
}

// Turn is everything a handler knows about the current message.
type Turn struct {
	SessionID string
	Utterance string
	Intent    models.Intent
	Slots     models.Slots // extracted from this utterance only
	Context   models.SessionContext
	Caller    models.Caller
}

// IntentHandler builds the reply for one intent.
type IntentHandler func(ctx context.Context, t Turn) models.AssistantResponse

// Assistant turns a user utterance into a reply.
type Assistant struct {
	classifier *Classifier
	replies    Completer
	contexts   ContextStore
	providers  ProviderQuery
	bookings   BookingQuery
	logger     *zap.Logger

	handlers          map[models.Intent]IntentHandler
	pickGreeting      func(n int) int
	completionTimeout time.Duration
}

// NewAssistant wires the assistant. classifier drives intent/slot detection,
// replies generates free-form answers.
func NewAssistant(
	classifier *Classifier,
	replies Completer,
	contexts ContextStore,
	providers ProviderQuery,
	bookings BookingQuery,
	logger *zap.Logger,
) *Assistant {
	a := &Assistant{
		classifier:        classifier,
		replies:           replies,
		contexts:          contexts,
		providers:         providers,
		bookings:          bookings,
		logger:            logger,
		pickGreeting:      rand.Intn,
		completionTimeout: DefaultCompletionTimeout,
	}
	a.handlers = map[models.Intent]IntentHandler{
		models.IntentBooking:        a.handleBooking,
		models.IntentSearch:         a.handleSearch,
		models.IntentRecommendation: a.handleRecommendation,
		models.IntentManageBooking:  a.handleManageBooking,
		models.IntentGreeting:       a.handleGreeting,
	}
	return a
}

// ProcessMessage runs one conversational turn. It never fails: every
// external failure is replaced by a default and logged.
func (a *Assistant) ProcessMessage(ctx context.Context, sessionID, utterance string, caller models.Caller) (resp models.AssistantResponse) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("chat turn panicked", zap.Any("panic", r), zap.String("session_id", sessionID))
			resp = newResponse(models.IntentError, nil)
			resp.Content = turnFailureReply
		}
	}()

	intentRes := a.classifier.Classify(ctx, utterance)
	if !intentRes.OK() {
		a.logger.Warn("intent classification failed, using other", zap.Error(intentRes.Err))
	}
	intent := intentRes.OrElse(models.IntentOther)

	slotsRes := a.classifier.ExtractSlots(ctx, utterance)
	if !slotsRes.OK() {
		a.logger.Warn("slot extraction failed, using none", zap.Error(slotsRes.Err))
	}
	slots := slotsRes.OrElse(models.Slots{})

	ctxRes := a.contexts.Get(ctx, sessionID)
	if !ctxRes.OK() {
		a.logger.Warn("session context unavailable, starting empty",
			zap.String("session_id", sessionID), zap.Error(ctxRes.Err))
	}
	sessionCtx := ctxRes.OrElse(models.SessionContext{Slots: models.Slots{}})

	resp = a.dispatch(ctx, Turn{
		SessionID: sessionID,
		Utterance: utterance,
		Intent:    intent,
		Slots:     slots,
		Context:   sessionCtx,
		Caller:    caller,
	})

	if err := a.contexts.Update(ctx, sessionID, intent, slots); err != nil {
		a.logger.Error("failed to update session context", zap.String("session_id", sessionID), zap.Error(err))
	}
	return resp
}

// dispatch routes the turn to its handler. Intents without a dedicated
// handler (support, other) get a generated reply.
func (a *Assistant) dispatch(ctx context.Context, t Turn) (resp models.AssistantResponse) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("intent handler panicked", zap.Any("panic", r), zap.String("intent", string(t.Intent)))
			resp = newResponse(t.Intent, t.Slots)
			resp.Content = dispatchFailureReply
		}
	}()

	h, ok := a.handlers[t.Intent]
	if !ok {
		h = a.handleFallback
	}
	return h(ctx, t)
}

func newResponse(intent models.Intent, slots models.Slots) models.AssistantResponse {
	if slots == nil {
		slots = models.Slots{}
	}
	return models.AssistantResponse{
		Intent:             intent,
		Entities:           slots,
		SuggestedActions:   []models.SuggestedAction{},
		SuggestedProviders: []string{},
	}
}

// findProviders absorbs query failures as an empty list.
func (a *Assistant) findProviders(ctx context.Context, criteria providerRepo.ProviderSearchCriteria) []models.Provider {
	res := resultOf(a.providers.Search(ctx, criteria))
	if !res.OK() {
		a.logger.Warn("provider query failed", zap.Error(res.Err))
	}
	return res.OrElse(nil)
}

func (a *Assistant) findBookings(ctx context.Context, filter bookingRepo.BookingFilter) []models.Booking {
	res := resultOf(a.bookings.ListForUser(ctx, filter))
	if !res.OK() {
		a.logger.Warn("booking query failed", zap.String("user_id", filter.UserID), zap.Error(res.Err))
	}
	return res.OrElse(nil)
}
