package ai

import "fmt"

const (
	intentSystemPrompt = "Sei un classificatore di intent."
	slotsSystemPrompt  = "Sei un estrattore di entità NLP. Rispondi solo in JSON valido."

	assistantPersona = `Sei l'assistente AI di commIT, una piattaforma per prenotazioni e servizi locali.

Il tuo compito è:
1. Aiutare gli utenti a trovare e prenotare servizi (ristoranti, negozi, parrucchieri, ecc.)
2. Rispondere alle domande sui provider disponibili
3. Assistere nella gestione delle prenotazioni
4. Fornire raccomandazioni personalizzate

Linee guida:
- Sii cordiale, professionale e utile
- Rispondi in italiano
- Quando suggerisci provider, basati sui dati reali del database
- Per prenotazioni, raccogli tutte le informazioni necessarie
- Se non sei sicuro, chiedi chiarimenti
- Mantieni le risposte concise ma complete

Informazioni che devi raccogliere per una prenotazione:
- Tipo di servizio richiesto
- Data e ora preferita
- Numero di persone (se applicabile)
- Richieste speciali
- Zona/città preferita

Ricorda: Non puoi confermare direttamente le prenotazioni, ma puoi guidare l'utente nel processo.`
)

func intentPrompt(message string) string {
	return fmt.Sprintf(`Analizza l'intent di questo messaggio e rispondi SOLO con una di queste categorie:
- booking: l'utente vuole prenotare un servizio
- search: l'utente cerca informazioni su servizi/provider
- manage_booking: l'utente vuole gestire una prenotazione esistente
- recommendation: l'utente chiede consigli
- support: l'utente ha bisogno di assistenza tecnica
- greeting: saluto o conversazione generica
- other: altro

Messaggio: %s

Intent:`, message)
}

func slotsPrompt(message string) string {
	return fmt.Sprintf(`Estrai le seguenti entità dal messaggio (rispondi in JSON):
- service_type: tipo di servizio (ristorante, parrucchiere, negozio, etc.)
- location: città o zona
- date: data richiesta (formato YYYY-MM-DD)
- time: ora richiesta (formato HH:MM)
- people_count: numero di persone
- price_range: fascia di prezzo (economico, medio, alto)
- special_requests: richieste speciali

Se un'entità non è presente, usa null.

Messaggio: %s

JSON:`, message)
}
