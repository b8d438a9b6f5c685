package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	bookingRepo "commit/database/repository/booking"
	providerRepo "commit/database/repository/provider"
	"commit/models"

	"go.uber.org/zap"
)

const (
	defaultSearchCity  = "Milano"
	recommendMinRating = 4.5
	fallbackReply      = "Mi dispiace, non ho capito bene. Posso aiutarti a cercare servizi, fare prenotazioni o gestire quelle esistenti. Cosa preferisci?"
)

// bookingRequirements are asked for in this order.
var bookingRequirements = []struct {
	slot  models.Slot
	label string
}{
	{models.SlotServiceType, "tipo di servizio"},
	{models.SlotDate, "data"},
	{models.SlotTime, "ora"},
	{models.SlotLocation, "zona/città"},
}

var bookingStatusIcons = map[models.BookingStatus]string{
	models.BookingPending:   "⏳",
	models.BookingConfirmed: "✅",
	models.BookingCancelled: "❌",
	models.BookingCompleted: "✔️",
}

var changeSearchActions = []models.SuggestedAction{
	{Type: "change_location", Label: "Cambia zona"},
	{Type: "change_service", Label: "Cambia servizio"},
}

func (a *Assistant) handleBooking(ctx context.Context, t Turn) models.AssistantResponse {
	resp := newResponse(models.IntentBooking, t.Slots)
	known := t.Context.Slots.Merge(t.Slots)

	var missing []string
	for _, req := range bookingRequirements {
		if known.Get(req.slot) == "" {
			missing = append(missing, req.label)
		}
	}
	if len(missing) > 0 {
		resp.Content = fmt.Sprintf("Per aiutarti con la prenotazione, mi servono ancora: %s.", strings.Join(missing, ", "))
		resp.SuggestedActions = []models.SuggestedAction{{Type: "provide_info", Label: "Fornisci informazioni"}}
		return resp
	}

	serviceType := known.Get(models.SlotServiceType)
	location := known.Get(models.SlotLocation)
	providers := a.findProviders(ctx, providerRepo.ProviderSearchCriteria{
		Category: CategoryOrOther(serviceType),
		City:     location,
		Limit:    5,
	})
	if len(providers) == 0 {
		resp.Content = fmt.Sprintf("Mi dispiace, non ho trovato %s disponibili a %s. Vuoi provare in un'altra zona?", serviceType, location)
		resp.SuggestedActions = append(resp.SuggestedActions, changeSearchActions...)
		return resp
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ho trovato questi %s nella zona di %s:\n", serviceType, location)
	for i, p := range providers {
		fmt.Fprintf(&b, "\n%d. **%s** %s", i+1, p.BusinessName, strings.Repeat("⭐", int(p.Rating)))
		if p.Description != "" {
			fmt.Fprintf(&b, "\n   %s", p.Description)
		}
		resp.SuggestedProviders = append(resp.SuggestedProviders, p.ID)
	}
	b.WriteString("\n\nQuale preferisci per la tua prenotazione?")

	resp.Content = b.String()
	resp.SuggestedActions = []models.SuggestedAction{
		{Type: "select_provider", Label: "Seleziona provider"},
		{Type: "search_again", Label: "Cerca altro"},
	}
	return resp
}

func (a *Assistant) handleSearch(ctx context.Context, t Turn) models.AssistantResponse {
	resp := newResponse(models.IntentSearch, t.Slots)

	serviceType := t.Slots.Get(models.SlotServiceType)
	if serviceType == "" {
		resp.Content = "Che tipo di servizio stai cercando? Posso aiutarti a trovare ristoranti, parrucchieri, negozi e molto altro!"
		resp.SuggestedActions = []models.SuggestedAction{
			{Type: "category", Label: "Ristoranti"},
			{Type: "category", Label: "Parrucchieri"},
			{Type: "category", Label: "Negozi"},
			{Type: "category", Label: "Servizi medici"},
		}
		return resp
	}

	location := t.Slots.Get(models.SlotLocation)
	if location == "" {
		location = defaultSearchCity
	}
	// Unknown service types search every category.
	category, _ := LookupCategory(serviceType)
	providers := a.findProviders(ctx, providerRepo.ProviderSearchCriteria{
		Category: category,
		City:     location,
		Limit:    10,
	})
	if len(providers) == 0 {
		resp.Content = fmt.Sprintf("Non ho trovato %s a %s. Vuoi cercare in un'altra zona?", serviceType, location)
		resp.SuggestedActions = append(resp.SuggestedActions, changeSearchActions...)
		return resp
	}
	if len(providers) > 5 {
		providers = providers[:5]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ecco i migliori %s a %s:\n", serviceType, location)
	for _, p := range providers {
		fmt.Fprintf(&b, "\n**%s**", p.BusinessName)
		if p.Rating != 0 {
			fmt.Fprintf(&b, " - Valutazione: %s/5 ⭐", formatRating(p.Rating))
		}
		if p.Address.Street != "" || p.Address.City != "" {
			fmt.Fprintf(&b, "\n📍 %s, %s", p.Address.Street, p.Address.City)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "\n%s...", truncateRunes(p.Description, 100))
		}
		b.WriteString("\n")
		resp.SuggestedProviders = append(resp.SuggestedProviders, p.ID)
	}

	resp.Content = b.String()
	resp.SuggestedActions = []models.SuggestedAction{
		{Type: "view_details", Label: "Vedi dettagli"},
		{Type: "book_now", Label: "Prenota ora"},
	}
	return resp
}

func (a *Assistant) handleRecommendation(ctx context.Context, t Turn) models.AssistantResponse {
	resp := newResponse(models.IntentRecommendation, t.Slots)

	providers := a.findProviders(ctx, providerRepo.ProviderSearchCriteria{
		MinRating: recommendMinRating,
		Limit:     3,
	})
	if len(providers) == 0 {
		resp.Content = "Sto ancora costruendo il database delle raccomandazioni. Cosa ti piacerebbe trovare?"
		return resp
	}

	var b strings.Builder
	b.WriteString("Ecco i servizi più apprezzati dai nostri utenti:\n")
	for _, p := range providers {
		fmt.Fprintf(&b, "\n🏆 **%s** (%s)", p.BusinessName, p.ServiceCategory)
		fmt.Fprintf(&b, "\n   Valutazione: %s/5 ⭐", formatRating(p.Rating))
		if p.TotalReviews > 0 {
			fmt.Fprintf(&b, " (%d recensioni)", p.TotalReviews)
		}
		b.WriteString("\n")
		resp.SuggestedProviders = append(resp.SuggestedProviders, p.ID)
	}

	resp.Content = b.String()
	resp.SuggestedActions = []models.SuggestedAction{
		{Type: "view_details", Label: "Scopri di più"},
		{Type: "book_now", Label: "Prenota"},
	}
	return resp
}

func (a *Assistant) handleManageBooking(ctx context.Context, t Turn) models.AssistantResponse {
	resp := newResponse(models.IntentManageBooking, t.Slots)

	bookings := a.findBookings(ctx, bookingRepo.BookingFilter{
		UserID:   t.Caller.ID,
		UserType: t.Caller.UserType,
		Limit:    5,
	})
	if len(bookings) == 0 {
		resp.Content = "Non hai prenotazioni attive. Vuoi prenotare un servizio?"
		resp.SuggestedActions = []models.SuggestedAction{
			{Type: "new_booking", Label: "Nuova prenotazione"},
			{Type: "search_services", Label: "Cerca servizi"},
		}
		return resp
	}

	var b strings.Builder
	b.WriteString("Ecco le tue prossime prenotazioni:\n")
	for _, bk := range bookings {
		icon, ok := bookingStatusIcons[bk.Status]
		if !ok {
			icon = "📅"
		}
		fmt.Fprintf(&b, "\n%s **%s**", icon, bk.ServiceName)
		fmt.Fprintf(&b, "\n   📅 %s alle %s", bk.BookingDate.Format("02/01/2006"), bk.BookingTime)
		fmt.Fprintf(&b, "\n   Stato: %s\n", bk.Status)
	}

	resp.Content = b.String()
	resp.SuggestedActions = []models.SuggestedAction{
		{Type: "cancel_booking", Label: "Cancella prenotazione"},
		{Type: "modify_booking", Label: "Modifica prenotazione"},
		{Type: "view_details", Label: "Vedi dettagli"},
	}
	return resp
}

// greetings returns the reply templates; the first three address the caller
// by name when it is known.
func greetings(firstName string) []string {
	name := ""
	if firstName != "" {
		name = " " + firstName
	}
	return []string{
		fmt.Sprintf("Ciao%s! Come posso aiutarti oggi?", name),
		fmt.Sprintf("Benvenuto%s su commIT! Cerchi un servizio particolare?", name),
		fmt.Sprintf("Salve%s! Sono qui per aiutarti a trovare e prenotare servizi. Cosa ti serve?", name),
		"Ciao! Posso aiutarti a trovare ristoranti, parrucchieri, negozi e molto altro. Cosa cerchi?",
	}
}

func (a *Assistant) handleGreeting(_ context.Context, t Turn) models.AssistantResponse {
	resp := newResponse(t.Intent, t.Slots)
	options := greetings(t.Caller.FirstName())
	resp.Content = options[a.pickGreeting(len(options))]
	return resp
}

// handleFallback answers support and unclassified messages with a
// generated reply.
func (a *Assistant) handleFallback(ctx context.Context, t Turn) models.AssistantResponse {
	resp := newResponse(t.Intent, t.Slots)

	system := assistantPersona
	if !t.Context.IsEmpty() {
		if b, err := json.MarshalIndent(contextDocument(t.Context), "", "  "); err == nil {
			system += "\n\nContesto conversazione: " + string(b)
		}
	}

	out := complete(ctx, a.replies, a.completionTimeout, CompletionRequest{
		System:      system,
		Prompt:      t.Utterance,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if !out.OK() {
		a.logger.Warn("reply generation failed, using stock reply", zap.Error(out.Err))
	}
	resp.Content = out.OrElse(fallbackReply)
	return resp
}

// formatRating prints whole ratings as "5.0" and others with their digits.
func formatRating(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
