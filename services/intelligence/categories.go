package ai

import (
	"strings"

	"commit/models"
)

// serviceCategories maps Italian service nouns onto provider categories.
// It is never written after init.
var serviceCategories = map[string]models.ServiceCategory{
	"ristorante":   models.CategoryRestaurant,
	"pizzeria":     models.CategoryRestaurant,
	"parrucchiere": models.CategoryBeauty,
	"barbiere":     models.CategoryBeauty,
	"negozio":      models.CategoryShop,
	"medico":       models.CategoryHealth,
	"dentista":     models.CategoryHealth,
}

// LookupCategory resolves free text to a category, case-insensitively.
func LookupCategory(serviceType string) (models.ServiceCategory, bool) {
	c, ok := serviceCategories[strings.ToLower(strings.TrimSpace(serviceType))]
	return c, ok
}

// CategoryOrOther is LookupCategory with CategoryOther for unknown text.
func CategoryOrOther(serviceType string) models.ServiceCategory {
	if c, ok := LookupCategory(serviceType); ok {
		return c
	}
	return models.CategoryOther
}
