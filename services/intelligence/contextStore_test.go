package ai

import (
	"context"
	"testing"
	"time"

	"commit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestContextEnrichmentIsMonotonic(t *testing.T) {
	repo := newMemoryContextRepo()
	store := NewDocumentContextStore(repo)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "s1", models.IntentSearch, models.Slots{models.SlotServiceType: "ristorante"}))
	// A null extraction is dropped before reaching the store.
	require.NoError(t, store.Update(ctx, "s1", models.IntentBooking, models.Slots{
		models.SlotServiceType: "",
		models.SlotLocation:    "Milano",
	}))

	res := store.Get(ctx, "s1")
	require.True(t, res.OK())
	assert.Equal(t, models.Slots{
		models.SlotServiceType: "ristorante",
		models.SlotLocation:    "Milano",
	}, res.Value.Slots)
	assert.Equal(t, models.IntentBooking, res.Value.LastIntent)
	assert.False(t, res.Value.LastUpdate.IsZero())
}

func TestContextLaterValueWins(t *testing.T) {
	repo := newMemoryContextRepo()
	store := NewDocumentContextStore(repo)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "s1", models.IntentSearch, models.Slots{models.SlotLocation: "Milano"}))
	require.NoError(t, store.Update(ctx, "s1", models.IntentSearch, models.Slots{models.SlotLocation: "Roma"}))

	assert.Equal(t, "Roma", store.Get(ctx, "s1").Value.Slots.Get(models.SlotLocation))
}

func TestContextGetFailure(t *testing.T) {
	store := NewDocumentContextStore(newMemoryContextRepo())
	res := store.Get(context.Background(), "missing")

	assert.False(t, res.OK())
	assert.True(t, res.OrElse(models.SessionContext{}).IsEmpty())
}

func TestContextFields(t *testing.T) {
	at := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	fields := contextFields(models.IntentBooking, models.Slots{
		models.SlotDate:     "2025-06-01",
		models.SlotLocation: "",
	}, at)

	assert.Equal(t, map[string]any{
		"entity_date": "2025-06-01",
		"last_intent": "booking",
		"last_update": "2025-06-01T20:00:00Z",
	}, fields)
}

func TestDecodeContextAcceptsStoredTypes(t *testing.T) {
	at := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	sc := decodeContext(map[string]any{
		"entity_people_count": int32(4),
		"entity_location":     "Milano",
		"entity_unknown":      "x",
		"last_intent":         "search",
		"last_update":         primitive.NewDateTimeFromTime(at),
	})

	assert.Equal(t, models.Slots{
		models.SlotPeopleCount: "4",
		models.SlotLocation:    "Milano",
	}, sc.Slots)
	assert.Equal(t, models.IntentSearch, sc.LastIntent)
	assert.True(t, at.Equal(sc.LastUpdate))
}

func TestSlotsMergeNeverClears(t *testing.T) {
	merged := models.Slots{"service_type": "1"}.Merge(models.Slots{"service_type": "", "location": "2"})
	assert.Equal(t, models.Slots{"service_type": "1", "location": "2"}, merged)
}
