package user

import (
	"context"
	"time"

	providerRepo "commit/database/repository/provider"
	userRepo "commit/database/repository/user"
	"commit/models"
	"commit/utils"

	"go.uber.org/zap"
)

// Profile is a stored account: either *models.User or *models.Provider.
type Profile interface {
	AccountInfo() models.Account
}

// AuthResponse is returned on register and login.
type AuthResponse struct {
	User   Profile           `json:"user"`
	Tokens *models.TokenPair `json:"tokens"`
}

// TokenRevoker remembers logged-out access tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Authenticate(ctx context.Context, accessToken string) (Profile, error)
	Logout(ctx context.Context, accessToken string) error

	// Profile
	Me(ctx context.Context, accountID string) (Profile, error)
	UpdateProfile(ctx context.Context, caller models.Account, req models.UpdateProfileRequest) (Profile, error)
	ChangePassword(ctx context.Context, caller models.Account, req models.ChangePasswordRequest) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Users     userRepo.UserRepository
	Providers providerRepo.ProviderRepository
	Tokens    *utils.TokenManager
	Revoker   TokenRevoker
	Logger    *zap.Logger
}
