package ai

import (
	"context"
	"testing"

	"commit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStaysInLabelSet(t *testing.T) {
	outputs := []string{
		"search", "  Booking\n", "MANAGE_BOOKING", "greeting", "support",
		"recommendation", "other", "prenotazione", "", "search.", "{\"intent\":\"search\"}",
	}
	for _, out := range outputs {
		c := NewClassifier(&scriptedCompleter{intent: out})
		got := c.Classify(context.Background(), "ciao").OrElse(models.IntentOther)
		assert.Contains(t, models.Intents, got, "output %q", out)
	}
}

func TestClassifyNormalizesOutput(t *testing.T) {
	c := NewClassifier(&scriptedCompleter{intent: "  Search \n"})
	res := c.Classify(context.Background(), "Cerco un ristorante")
	require.True(t, res.OK())
	assert.Equal(t, models.IntentSearch, res.Value)
}

func TestClassifyUnknownLabelIsOther(t *testing.T) {
	c := NewClassifier(&scriptedCompleter{intent: "weather"})
	res := c.Classify(context.Background(), "che tempo fa?")
	require.True(t, res.OK())
	assert.Equal(t, models.IntentOther, res.Value)
}

func TestClassifyFailureFallsBackToOther(t *testing.T) {
	completer := &scriptedCompleter{err: errBoom}
	c := NewClassifier(completer)
	res := c.Classify(context.Background(), "ciao")

	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, errBoom)
	assert.Equal(t, models.IntentOther, res.OrElse(models.IntentOther))
}

func TestClassifyPromptSettings(t *testing.T) {
	completer := &scriptedCompleter{intent: "greeting"}
	NewClassifier(completer).Classify(context.Background(), "Ciao!")

	assert.Equal(t, intentSystemPrompt, completer.lastReq.System)
	assert.Equal(t, float32(0), completer.lastReq.Temperature)
	assert.Equal(t, 10, completer.lastReq.MaxTokens)
	assert.Contains(t, completer.lastReq.Prompt, "Messaggio: Ciao!")
}

func TestExtractSlots(t *testing.T) {
	completer := &scriptedCompleter{slots: `{"service_type": "ristorante", "location": "Milano", "date": null, "time": null, "people_count": 4, "price_range": "", "special_requests": null}`}
	res := NewClassifier(completer).ExtractSlots(context.Background(), "Cerco un ristorante a Milano per 4")

	require.True(t, res.OK())
	assert.Equal(t, models.Slots{
		models.SlotServiceType: "ristorante",
		models.SlotLocation:    "Milano",
		models.SlotPeopleCount: "4",
	}, res.Value)
	assert.Equal(t, 200, completer.lastReq.MaxTokens)
}

func TestExtractSlotsMalformedIsEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":      "Sure! The service is a restaurant.",
		"array":         `["ristorante", "Milano"]`,
		"scalar":        `"ristorante"`,
		"no slot keys":  `{"city": "Milano"}`,
		"truncated":     `{"service_type": "ristor`,
		"empty output":  "",
		"fence no json": "```\nnope\n```",
	}
	for name, out := range cases {
		t.Run(name, func(t *testing.T) {
			res := NewClassifier(&scriptedCompleter{slots: out}).ExtractSlots(context.Background(), "x")
			assert.False(t, res.OK())
			assert.Empty(t, res.OrElse(models.Slots{}))
		})
	}
}

func TestExtractSlotsCallFailureIsEmpty(t *testing.T) {
	res := NewClassifier(&scriptedCompleter{err: errBoom}).ExtractSlots(context.Background(), "x")
	assert.ErrorIs(t, res.Err, errBoom)
	assert.Equal(t, models.Slots{}, res.OrElse(models.Slots{}))
}

func TestParseSlotsCodeFence(t *testing.T) {
	slots, err := parseSlots("```json\n{\"service_type\": \"barbiere\", \"location\": null}\n```")
	require.NoError(t, err)
	assert.Equal(t, models.Slots{models.SlotServiceType: "barbiere"}, slots)
}

func TestParseSlotsDropsNestedValues(t *testing.T) {
	slots, err := parseSlots(`{"location": {"city": "Milano"}, "special_requests": ["vegano"], "people_count": 2.5, "price_range": true}`)
	require.NoError(t, err)
	assert.Equal(t, models.Slots{
		models.SlotPeopleCount: "2.5",
		models.SlotPriceRange:  "true",
	}, slots)
}

func TestParseSlotsAllNullIsValid(t *testing.T) {
	slots, err := parseSlots(`{"service_type": null, "location": null}`)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json {\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`  {"a":1} `))
}

func TestCategoryLookup(t *testing.T) {
	c, ok := LookupCategory("Pizzeria")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryRestaurant, c)

	_, ok = LookupCategory("idraulico")
	assert.False(t, ok)
	assert.Equal(t, models.CategoryOther, CategoryOrOther("idraulico"))
	assert.Equal(t, models.CategoryHealth, CategoryOrOther("dentista"))
	assert.Equal(t, models.CategoryBeauty, CategoryOrOther(" barbiere "))
}

func TestResultOrElse(t *testing.T) {
	assert.Equal(t, 3, Ok(3).OrElse(7))
	assert.Equal(t, 7, Failed[int](errBoom).OrElse(7))
}
