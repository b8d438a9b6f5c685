package providerRepo

import (
	"context"
	"errors"

	"commit/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no provider matches the lookup.
var ErrNotFound = errors.New("provider not found")

// ProviderSearchCriteria narrows a provider listing. Zero values mean "no filter".
type ProviderSearchCriteria struct {
	Category  models.ServiceCategory
	City      string   // case-insensitive substring of address.city
	Tags      []string // any of
	MinRating float64
	Limit     int
	Skip      int
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// Search lists active providers matching criteria, best rated first.
	Search(ctx context.Context, criteria ProviderSearchCriteria) ([]models.Provider, error)
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByEmail returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	Create(ctx context.Context, provider *models.Provider) error
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	SetPassword(ctx context.Context, id, hash string) error
	Count(ctx context.Context) (int64, error)
}
