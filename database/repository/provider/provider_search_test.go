package providerRepo

import (
	"testing"

	"commit/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildSearchFilterOnlyActive(t *testing.T) {
	f := buildSearchFilter(ProviderSearchCriteria{})
	assert.Equal(t, bson.M{"is_active": true}, f)
}

func TestBuildSearchFilterAllCriteria(t *testing.T) {
	f := buildSearchFilter(ProviderSearchCriteria{
		Category:  models.CategoryRestaurant,
		City:      "Milano",
		Tags:      []string{"pizza"},
		MinRating: 4.5,
	})

	assert.Equal(t, true, f["is_active"])
	assert.Equal(t, models.CategoryRestaurant, f["service_category"])
	assert.Equal(t, bson.M{"$regex": "Milano", "$options": "i"}, f["address.city"])
	assert.Equal(t, bson.M{"$in": []string{"pizza"}}, f["tags"])
	assert.Equal(t, bson.M{"$gte": 4.5}, f["rating"])
}

func TestBuildSearchFilterEscapesCity(t *testing.T) {
	f := buildSearchFilter(ProviderSearchCriteria{City: "St. (Moritz)"})
	assert.Equal(t, `St\. \(Moritz\)`, f["address.city"].(bson.M)["$regex"])
}
