package bookingRepo

import (
	"testing"

	"commit/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestOwnerFilter(t *testing.T) {
	q, ok := ownerFilter(BookingFilter{UserID: "c1", UserType: models.UserTypeCustomer})
	assert.True(t, ok)
	assert.Equal(t, bson.M{"customer_id": "c1"}, q)

	q, ok = ownerFilter(BookingFilter{UserID: "p1", UserType: models.UserTypeProvider, Status: models.BookingConfirmed})
	assert.True(t, ok)
	assert.Equal(t, bson.M{"provider_id": "p1", "status": models.BookingConfirmed}, q)

	_, ok = ownerFilter(BookingFilter{UserID: "a1", UserType: models.UserTypeAdmin})
	assert.False(t, ok)
}
