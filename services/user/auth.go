package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	providerRepo "commit/database/repository/provider"
	userRepo "commit/database/repository/user"
	"commit/models"
	"commit/utils"

	"go.uber.org/zap"
)

// Register creates a customer or provider account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	account := models.Account{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		UserType:     req.UserType,
		Phone:        req.Phone,
		IsActive:     true,
	}

	var profile Profile
	switch req.UserType {
	case models.UserTypeCustomer:
		prefs := req.Preferences
		if prefs == nil {
			prefs = map[string]any{}
		}
		u := &models.User{Account: account, Preferences: prefs, FavoriteProviders: []string{}}
		if err := s.Users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("register customer: %w", err)
		}
		profile = u
	case models.UserTypeProvider:
		p := &models.Provider{
			Account:               account,
			BusinessName:          strings.TrimSpace(req.BusinessName),
			ServiceCategory:       req.ServiceCategory,
			Description:           req.Description,
			VATNumber:             req.VATNumber,
			BusinessHours:         req.BusinessHours,
			ServicesOffered:       req.ServicesOffered,
			AcceptsOnlineBookings: true,
			Tags:                  req.Tags,
		}
		if req.Address != nil {
			p.Address = *req.Address
		}
		if err := s.Providers.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("register provider: %w", err)
		}
		profile = p
	}

	tokens, err := s.Tokens.GeneratePair(profile.AccountInfo())
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.Logger.Info("Account registered", zap.String("email", email), zap.String("user_type", string(req.UserType)))
	return &AuthResponse{User: profile, Tokens: tokens}, nil
}

func validateRegistration(req models.RegisterRequest) error {
	if req.UserType != models.UserTypeCustomer && req.UserType != models.UserTypeProvider {
		return ErrInvalidUserType
	}
	if err := validateFullName(req.FullName); err != nil {
		return err
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return err
	}
	if req.UserType == models.UserTypeProvider {
		if strings.TrimSpace(req.BusinessName) == "" {
			return ErrBusinessNameMissing
		}
		if !req.ServiceCategory.Valid() {
			return ErrInvalidCategory
		}
	}
	return nil
}

func validateFullName(name string) error {
	n := len([]rune(strings.TrimSpace(name)))
	if n < 2 || n > 100 {
		return ErrInvalidFullName
	}
	return nil
}

// Login verifies the password and returns a fresh token pair.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*AuthResponse, error) {
	profile, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		s.Logger.Error("Login: failed to fetch account", zap.Error(err))
		return nil, fmt.Errorf("login: %w", err)
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}
	acc := profile.AccountInfo()
	if !checkPassword(acc.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !acc.IsActive {
		return nil, ErrAccountDisabled
	}

	tokens, err := s.Tokens.GeneratePair(acc)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.Logger.Info("Login successful", zap.String("email", acc.Email))
	return &AuthResponse{User: profile, Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *DefaultUserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Tokens.ParseToken(refreshToken, utils.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	profile, err := s.findByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return "", err
	}
	if !profile.AccountInfo().IsActive {
		return "", ErrAccountDisabled
	}
	return s.Tokens.GenerateToken(profile.AccountInfo(), utils.AccessToken)
}

// Authenticate resolves an access token to an active account. There is no
// anonymous or fallback identity.
func (s *DefaultUserService) Authenticate(ctx context.Context, accessToken string) (Profile, error) {
	claims, err := s.Tokens.ParseToken(accessToken, utils.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	if s.Revoker != nil {
		revoked, err := s.Revoker.IsRevoked(ctx, utils.HashToken(accessToken))
		if err != nil {
			// Redis outage: accept signed, unexpired tokens.
			s.Logger.Warn("token revocation check failed", zap.Error(err))
		} else if revoked {
			return nil, fmt.Errorf("%w: token revoked", ErrUnauthorized)
		}
	}

	profile, err := s.findByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return nil, err
	}
	if !profile.AccountInfo().IsActive {
		return nil, ErrAccountDisabled
	}
	return profile, nil
}

// Logout revokes the access token until it would have expired.
func (s *DefaultUserService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.Tokens.ParseToken(accessToken, utils.AccessToken)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if s.Revoker == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt)
	if err := s.Revoker.Revoke(ctx, utils.HashToken(accessToken), ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// findByEmail looks in users, then providers. It returns (nil, nil) when
// neither has the email.
func (s *DefaultUserService) findByEmail(ctx context.Context, email string) (Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	p, err := s.Providers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	return nil, nil
}

func (s *DefaultUserService) findByID(ctx context.Context, id string) (Profile, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, err
	}
	p, err := s.Providers.GetByID(ctx, id)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, providerRepo.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	return nil, err
}
