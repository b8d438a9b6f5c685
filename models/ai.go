package models

import "time"

// Intent is the coarse purpose of a user utterance.
type Intent string

const (
	IntentBooking        Intent = "booking"
	IntentSearch         Intent = "search"
	IntentManageBooking  Intent = "manage_booking"
	IntentRecommendation Intent = "recommendation"
	IntentSupport        Intent = "support"
	IntentGreeting       Intent = "greeting"
	IntentOther          Intent = "other"

	// IntentError marks a turn whose processing failed as a whole.
	IntentError Intent = "error"
)

// Intents lists the labels a classifier may emit.
var Intents = []Intent{
	IntentBooking,
	IntentSearch,
	IntentManageBooking,
	IntentRecommendation,
	IntentSupport,
	IntentGreeting,
	IntentOther,
}

// ParseIntent maps raw classifier output onto the closed label set.
// Unknown labels become IntentOther.
func ParseIntent(s string) Intent {
	for _, in := range Intents {
		if string(in) == s {
			return in
		}
	}
	return IntentOther
}

// Slot names a structured value extracted from free text.
type Slot string

const (
	SlotServiceType     Slot = "service_type"
	SlotLocation        Slot = "location"
	SlotDate            Slot = "date"
	SlotTime            Slot = "time"
	SlotPeopleCount     Slot = "people_count"
	SlotPriceRange      Slot = "price_range"
	SlotSpecialRequests Slot = "special_requests"
)

// SlotNames is the fixed, ordered slot set.
var SlotNames = []Slot{
	SlotServiceType,
	SlotLocation,
	SlotDate,
	SlotTime,
	SlotPeopleCount,
	SlotPriceRange,
	SlotSpecialRequests,
}

// Slots maps slot names to their values. A missing key means unknown;
// empty strings are never stored.
type Slots map[Slot]string

// Get returns the slot value, or "" when unknown.
func (s Slots) Get(name Slot) string {
	if s == nil {
		return ""
	}
	return s[name]
}

// Merge returns a copy of s enriched with every non-empty value of update.
// Values already known in s are only replaced, never cleared.
func (s Slots) Merge(update Slots) Slots {
	out := make(Slots, len(s)+len(update))
	for k, v := range s {
		if v != "" {
			out[k] = v
		}
	}
	for k, v := range update {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// SessionContext is the per-conversation knowledge accumulated across turns.
type SessionContext struct {
	Slots      Slots     `json:"slots"`
	LastIntent Intent    `json:"last_intent,omitempty"`
	LastUpdate time.Time `json:"last_update,omitempty"`
}

// IsEmpty reports whether nothing has been learned about the session yet.
func (c SessionContext) IsEmpty() bool {
	return len(c.Slots) == 0 && c.LastIntent == ""
}

// SuggestedAction is a quick-reply button offered to the client.
type SuggestedAction struct {
	Type  string `bson:"type" json:"type"`   // e.g. "select_provider", "book_now"
	Label string `bson:"label" json:"label"` // text on the button
}

// AssistantResponse is the payload of one assistant turn.
type AssistantResponse struct {
	Content            string            `json:"content"`
	Intent             Intent            `json:"intent"`
	Entities           Slots             `json:"entities"`
	SuggestedActions   []SuggestedAction `json:"suggested_actions"`
	SuggestedProviders []string          `json:"suggested_providers"`
}

// Caller identifies who is talking to the assistant.
type Caller struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	UserType UserType `json:"user_type"`
}

// FirstName returns the first word of the caller's full name, or "".
func (c Caller) FirstName() string {
	return firstWord(c.FullName)
}

// CallerFromAccount projects an account onto the assistant's view of it.
func CallerFromAccount(a Account) Caller {
	return Caller{ID: a.ID, FullName: a.FullName, UserType: a.UserType}
}
