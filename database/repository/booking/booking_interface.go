package bookingRepo

import (
	"context"

	"commit/models"
)

// BookingFilter selects the bookings visible to one account.
type BookingFilter struct {
	UserID   string
	UserType models.UserType
	Status   models.BookingStatus // empty = any
	Limit    int
	Skip     int
}

// BookingRepository defines read access to bookings.
type BookingRepository interface {
	// ListForUser returns the caller's bookings, most recent booking_date first.
	// Customers see bookings they made, providers bookings made with them and
	// admins nothing.
	ListForUser(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
}
