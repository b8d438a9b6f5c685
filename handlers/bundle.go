package handlers

import (
	"commit/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Auth middleware.Authenticator

	// Auth endpoints
	RegisterHandler       gin.HandlerFunc
	LoginHandler          gin.HandlerFunc
	RefreshHandler        gin.HandlerFunc
	MeHandler             gin.HandlerFunc
	UpdateProfileHandler  gin.HandlerFunc
	ChangePasswordHandler gin.HandlerFunc
	LogoutHandler         gin.HandlerFunc

	// Provider endpoints
	ListProvidersHandler gin.HandlerFunc
	GetProviderHandler   gin.HandlerFunc

	// Booking endpoints
	ListBookingsHandler gin.HandlerFunc

	// Chat endpoints
	StartChatHandler   gin.HandlerFunc
	SendMessageHandler gin.HandlerFunc
	ChatHistoryHandler gin.HandlerFunc
	EndChatHandler     gin.HandlerFunc

	// Status endpoints
	RootHandler   gin.HandlerFunc
	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires the per-area handlers into a bundle.
func NewHandlerBundle(auth *AuthHandler, providers *ProviderHandler, bookings *BookingHandler, chat *ChatHandler, status *StatusHandler) *HandlerBundle {
	return &HandlerBundle{
		Auth: auth.Service,

		RegisterHandler:       auth.RegisterHandler,
		LoginHandler:          auth.LoginHandler,
		RefreshHandler:        auth.RefreshHandler,
		MeHandler:             auth.MeHandler,
		UpdateProfileHandler:  auth.UpdateProfileHandler,
		ChangePasswordHandler: auth.ChangePasswordHandler,
		LogoutHandler:         auth.LogoutHandler,

		ListProvidersHandler: providers.ListProvidersHandler,
		GetProviderHandler:   providers.GetProviderHandler,

		ListBookingsHandler: bookings.ListBookingsHandler,

		StartChatHandler:   chat.StartChatHandler,
		SendMessageHandler: chat.SendMessageHandler,
		ChatHistoryHandler: chat.ChatHistoryHandler,
		EndChatHandler:     chat.EndChatHandler,

		RootHandler:   status.RootHandler,
		HealthHandler: status.HealthHandler,
	}
}
