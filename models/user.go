package models

import (
	"strings"
	"time"
)

// UserType is the role of an account on the platform.
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeProvider UserType = "provider"
	UserTypeAdmin    UserType = "admin"
)

// Valid reports whether t is one of the known account roles.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeCustomer, UserTypeProvider, UserTypeAdmin:
		return true
	}
	return false
}

// Account holds the fields shared by every authenticated principal,
// regardless of the collection it lives in.
type Account struct {
	ID            string    `bson:"id" json:"id"`
	Email         string    `bson:"email" json:"email"`
	PasswordHash  string    `bson:"password_hash" json:"-"`
	FullName      string    `bson:"full_name" json:"full_name"`
	UserType      UserType  `bson:"user_type" json:"user_type"`
	Phone         string    `bson:"phone,omitempty" json:"phone,omitempty"`
	IsActive      bool      `bson:"is_active" json:"is_active"`
	EmailVerified bool      `bson:"email_verified" json:"email_verified"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// AccountInfo exposes the shared account fields of User and Provider.
func (a Account) AccountInfo() Account {
	return a
}

// FirstName returns the first word of the account's full name, or "".
func (a Account) FirstName() string {
	return firstWord(a.FullName)
}

func firstWord(s string) string {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// User is a customer (or admin) record stored in the users collection.
type User struct {
	Account           `bson:",inline"`
	Preferences       map[string]any `bson:"preferences" json:"preferences"`
	FavoriteProviders []string       `bson:"favorite_providers" json:"favorite_providers"`
	TotalBookings     int            `bson:"total_bookings" json:"total_bookings"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8,max=100"`
	FullName string   `json:"full_name" binding:"required,min=2,max=100"`
	UserType UserType `json:"user_type" binding:"required"`
	Phone    string   `json:"phone"`

	// Customer only.
	Preferences map[string]any `json:"preferences"`

	// Provider only.
	BusinessName    string          `json:"business_name"`
	ServiceCategory ServiceCategory `json:"service_category"`
	Description     string          `json:"description"`
	Address         *Address        `json:"address"`
	VATNumber       string          `json:"vat_number"`
	BusinessHours   []BusinessHours `json:"business_hours"`
	ServicesOffered []ServiceOffer  `json:"services_offered"`
	Tags            []string        `json:"tags"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the payload for POST /auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest is the payload for POST /auth/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest carries the optional fields of PUT /auth/profile.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`

	Preferences map[string]any `json:"preferences"`

	BusinessName    *string         `json:"business_name"`
	Description     *string         `json:"description"`
	Address         *Address        `json:"address"`
	BusinessHours   []BusinessHours `json:"business_hours"`
	ServicesOffered []ServiceOffer  `json:"services_offered"`
	Tags            []string        `json:"tags"`
}

// TokenPair is returned on register and login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}
