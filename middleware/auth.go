package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"commit/models"
	"commit/services/user"
	"commit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware.
const (
	AccountKey = "account"
	CallerKey  = "caller"
	TokenKey   = "accessToken"
)

// Authenticator resolves an access token to an active account.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (user.Profile, error)
}

// JWTAuthMiddleware requires a valid bearer access token for an active
// account. With optional set, requests without a usable token pass through
// anonymously instead of being rejected.
func JWTAuthMiddleware(auth Authenticator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			if optional {
				c.Next()
				return
			}
			c.Header("WWW-Authenticate", "Bearer")
			utils.JSONError(c, http.StatusUnauthorized, "Token di autenticazione richiesto")
			return
		}

		profile, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if optional {
				c.Next()
				return
			}
			switch {
			case errors.Is(err, user.ErrAccountDisabled):
				utils.JSONError(c, http.StatusForbidden, "Account disattivato")
			case errors.Is(err, user.ErrUnauthorized):
				c.Header("WWW-Authenticate", "Bearer")
				utils.JSONError(c, http.StatusUnauthorized, "Invalid authentication credentials")
			default:
				utils.GetLogger().Error("Authentication failed", zap.Error(err))
				utils.JSONError(c, http.StatusUnauthorized, "Invalid authentication credentials")
			}
			return
		}

		acc := profile.AccountInfo()
		c.Set(AccountKey, acc)
		c.Set(CallerKey, models.CallerFromAccount(acc))
		c.Set(TokenKey, tokenString)
		c.Next()
	}
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// CurrentAccount returns the authenticated account, if any.
func CurrentAccount(c *gin.Context) (models.Account, bool) {
	v, ok := c.Get(AccountKey)
	if !ok {
		return models.Account{}, false
	}
	acc, ok := v.(models.Account)
	return acc, ok
}

// CurrentCaller returns the authenticated account as seen by the assistant.
func CurrentCaller(c *gin.Context) (models.Caller, bool) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}

// AccessToken returns the raw bearer token of an authenticated request.
func AccessToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
