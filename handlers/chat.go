package handlers

import (
	"errors"
	"net/http"

	"commit/middleware"
	"commit/models"
	"commit/services/chat"
	"commit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	Service chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// StartChatHandler handles POST /chat/start.
func (h *ChatHandler) StartChatHandler(c *gin.Context) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Token di autenticazione richiesto")
		return
	}
	session, err := h.Service.Start(c.Request.Context(), caller)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "session": session})
}

// SendMessageHandler handles POST /chat/message.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Token di autenticazione richiesto")
		return
	}
	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	reply, err := h.Service.SendMessage(c.Request.Context(), caller, req.SessionID, req.Message)
	if err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": reply.SessionID,
		"message":    reply.Message,
	})
}

// ChatHistoryHandler handles GET /chat/history/:sessionID.
func (h *ChatHandler) ChatHistoryHandler(c *gin.Context) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Token di autenticazione richiesto")
		return
	}
	sessionID := c.Param("sessionID")
	messages, err := h.Service.History(c.Request.Context(), caller, sessionID)
	if err != nil {
		respondChatError(c, err)
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
		"count":      len(messages),
		"messages":   messages,
	})
}

// EndChatHandler handles POST /chat/end/:sessionID.
func (h *ChatHandler) EndChatHandler(c *gin.Context) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Token di autenticazione richiesto")
		return
	}
	if err := h.Service.End(c.Request.Context(), caller, c.Param("sessionID")); err != nil {
		respondChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sessione terminata"})
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		utils.JSONError(c, http.StatusBadRequest, "Messaggio vuoto")
	case errors.Is(err, chat.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Sessione non trovata")
	case errors.Is(err, chat.ErrSessionEnded):
		utils.JSONError(c, http.StatusConflict, "Sessione terminata")
	default:
		getLogger(c).Error("Chat request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Errore durante la conversazione")
	}
}
