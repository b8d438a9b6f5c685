package handlers

import (
	"errors"
	"net/http"
	"strings"

	"commit/middleware"
	"commit/models"
	"commit/services/user"
	"commit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Service user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// RegisterHandler handles POST /auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondAccountError(c, err, "Errore durante la registrazione")
		return
	}
	logger.Info("Account registered", zap.String("email", req.Email), zap.String("user_type", string(req.UserType)))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registrazione completata con successo",
		"user":    resp.User,
		"tokens":  resp.Tokens,
	})
}

// LoginHandler handles POST /auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		respondAccountError(c, err, "Errore durante il login")
		return
	}
	logger.Info("Login", zap.String("email", req.Email))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login effettuato con successo",
		"user":    resp.User,
		"tokens":  resp.Tokens,
	})
}

// RefreshHandler handles POST /auth/refresh.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	access, err := h.Service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		getLogger(c).Debug("Refresh rejected", zap.Error(err))
		utils.JSONError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"access_token": access,
		"token_type":   "bearer",
	})
}

// MeHandler handles GET /auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	acc, ok := middleware.CurrentAccount(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Token di autenticazione richiesto")
		return
	}
	profile, err := h.Service.Me(c.Request.Context(), acc.ID)
	if err != nil {
		respondAccountError(c, err, "Errore durante il recupero dei dati")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

// UpdateProfileHandler handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	acc, ok := middleware.CurrentAccount(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Token di autenticazione richiesto")
		return
	}
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	profile, err := h.Service.UpdateProfile(c.Request.Context(), acc, req)
	if err != nil {
		respondAccountError(c, err, "Errore durante l'aggiornamento")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profilo aggiornato con successo",
		"user":    profile,
	})
}

// ChangePasswordHandler handles POST /auth/change-password.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	acc, ok := middleware.CurrentAccount(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Token di autenticazione richiesto")
		return
	}
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.Service.ChangePassword(c.Request.Context(), acc, req); err != nil {
		respondAccountError(c, err, "Errore durante il cambio password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password cambiata con successo"})
}

// LogoutHandler handles POST /auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.Service.Logout(c.Request.Context(), middleware.AccessToken(c)); err != nil {
		respondAccountError(c, err, "Errore durante il logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout effettuato con successo"})
}

// badRequestErrors are reported to the client with their own message.
var badRequestErrors = []error{
	user.ErrEmailTaken,
	user.ErrInvalidUserType,
	user.ErrBusinessNameMissing,
	user.ErrInvalidCategory,
	user.ErrNoFieldsToUpdate,
	user.ErrInvalidFullName,
}

// respondAccountError maps account service errors to HTTP statuses.
// Unknown errors become a 500 with fallback as the message.
func respondAccountError(c *gin.Context, err error, fallback string) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			utils.JSONError(c, http.StatusBadRequest, capitalize(target.Error()))
			return
		}
	}

	var policy user.PasswordPolicyError
	switch {
	case errors.As(err, &policy):
		utils.JSONError(c, http.StatusBadRequest, capitalize(policy.Reason))
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Email o password errati")
	case errors.Is(err, user.ErrUnauthorized):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid authentication credentials")
	case errors.Is(err, user.ErrAccountDisabled):
		utils.JSONError(c, http.StatusForbidden, "Account disattivato")
	case errors.Is(err, user.ErrAccountNotFound):
		utils.JSONError(c, http.StatusNotFound, "Utente non trovato")
	case errors.Is(err, user.ErrWrongPassword), errors.Is(err, user.ErrSamePassword):
		utils.JSONError(c, http.StatusBadRequest, "Impossibile cambiare password")
	default:
		getLogger(c).Error(fallback, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, fallback)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
