package ai

import (
	"context"
	"errors"
	"sync"

	bookingRepo "commit/database/repository/booking"
	providerRepo "commit/database/repository/provider"
	"commit/models"
)

var errBoom = errors.New("boom")

// scriptedCompleter answers by system prompt.
type scriptedCompleter struct {
	intent  string
	slots   string
	reply   string
	err     error
	lastReq CompletionRequest
}

func (c *scriptedCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	c.lastReq = req
	if c.err != nil {
		return "", c.err
	}
	switch req.System {
	case intentSystemPrompt:
		return c.intent, nil
	case slotsSystemPrompt:
		return c.slots, nil
	}
	return c.reply, nil
}

type fakeProviders struct {
	result   []models.Provider
	err      error
	criteria []providerRepo.ProviderSearchCriteria
}

func (f *fakeProviders) Search(_ context.Context, c providerRepo.ProviderSearchCriteria) ([]models.Provider, error) {
	f.criteria = append(f.criteria, c)
	return f.result, f.err
}

type fakeBookings struct {
	result  []models.Booking
	err     error
	filters []bookingRepo.BookingFilter
}

func (f *fakeBookings) ListForUser(_ context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error) {
	f.filters = append(f.filters, filter)
	return f.result, f.err
}

// memoryContextRepo mimics $set on context.<key>.
type memoryContextRepo struct {
	mu   sync.Mutex
	docs map[string]map[string]any
	err  error
}

func newMemoryContextRepo() *memoryContextRepo {
	return &memoryContextRepo{docs: map[string]map[string]any{}}
}

func (r *memoryContextRepo) GetContext(_ context.Context, id string) (map[string]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	doc, ok := r.docs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	out := map[string]any{}
	for k, v := range doc {
		out[k] = v
	}
	return out, nil
}

func (r *memoryContextRepo) SetContextFields(_ context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	doc, ok := r.docs[id]
	if !ok {
		doc = map[string]any{}
		r.docs[id] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}
