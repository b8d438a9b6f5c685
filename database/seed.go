package database

import (
	"context"
	"fmt"

	"commit/models"

	"go.uber.org/zap"
)

// ProviderSeeder is the subset of the provider repository used for seeding.
type ProviderSeeder interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *models.Provider) error
}

// SeedProviders inserts the sample providers when the collection is empty.
// Seeded accounts have no password and cannot log in.
func SeedProviders(ctx context.Context, repo ProviderSeeder, logger *zap.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count providers: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, p := range sampleProviders() {
		p := p
		if err := repo.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed provider %s: %w", p.BusinessName, err)
		}
	}
	logger.Info("Seeded sample providers", zap.Int("count", 2))
	return nil
}

func sampleProviders() []models.Provider {
	everyDay := make([]models.BusinessHours, 0, 7)
	for d := 0; d < 7; d++ {
		everyDay = append(everyDay, models.BusinessHours{Day: d, OpenTime: "11:00", CloseTime: "23:00"})
	}

	barberHours := []models.BusinessHours{
		{Day: 0, OpenTime: "09:00", CloseTime: "19:00"},
		{Day: 1, OpenTime: "09:00", CloseTime: "19:00"},
		{Day: 2, OpenTime: "09:00", CloseTime: "19:00"},
		{Day: 3, OpenTime: "09:00", CloseTime: "19:00"},
		{Day: 4, OpenTime: "09:00", CloseTime: "19:00"},
		{Day: 5, OpenTime: "09:00", CloseTime: "13:00"},
		{Day: 6, OpenTime: "09:00", CloseTime: "13:00", IsClosed: true},
	}

	return []models.Provider{
		{
			Account: models.Account{
				Email:         "pizzeria.napoli@example.com",
				FullName:      "Mario Rossi",
				UserType:      models.UserTypeProvider,
				Phone:         "+390212345678",
				IsActive:      true,
				EmailVerified: true,
			},
			BusinessName:    "Pizzeria Napoli",
			ServiceCategory: models.CategoryRestaurant,
			Description:     "Autentica pizza napoletana dal 1950",
			Address: models.Address{
				Street:      "Via Roma 1",
				City:        "Milano",
				PostalCode:  "20121",
				Province:    "MI",
				Country:     "Italia",
				Coordinates: &models.Coordinates{Lat: 45.464, Lng: 9.188},
			},
			BusinessHours: everyDay,
			ServicesOffered: []models.ServiceOffer{
				{Name: "Tavolo per 2", Price: 0, Duration: 120},
				{Name: "Tavolo per 4", Price: 0, Duration: 120},
			},
			AcceptsOnlineBookings: true,
			Rating:                4.5,
			TotalReviews:          120,
			Tags:                  []string{"pizza", "napoletana", "forno a legna"},
		},
		{
			Account: models.Account{
				Email:         "barber.style@example.com",
				FullName:      "Giuseppe Verdi",
				UserType:      models.UserTypeProvider,
				Phone:         "+390298765432",
				IsActive:      true,
				EmailVerified: true,
			},
			BusinessName:    "Barber Style",
			ServiceCategory: models.CategoryBeauty,
			Description:     "Barbiere professionale per uomo",
			Address: models.Address{
				Street:      "Corso Buenos Aires 25",
				City:        "Milano",
				PostalCode:  "20124",
				Province:    "MI",
				Country:     "Italia",
				Coordinates: &models.Coordinates{Lat: 45.478, Lng: 9.205},
			},
			BusinessHours: barberHours,
			ServicesOffered: []models.ServiceOffer{
				{Name: "Taglio uomo", Price: 25, Duration: 30},
				{Name: "Barba", Price: 15, Duration: 20},
				{Name: "Taglio + Barba", Price: 35, Duration: 45},
			},
			AcceptsOnlineBookings: true,
			Rating:                4.8,
			TotalReviews:          85,
			Tags:                  []string{"barbiere", "uomo", "barba", "capelli"},
		},
	}
}
