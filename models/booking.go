package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no_show"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingNoShow:
		return true
	}
	return false
}

// Booking represents a scheduled appointment between a customer and a provider.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	CustomerID      string        `bson:"customer_id" json:"customer_id"`
	ProviderID      string        `bson:"provider_id" json:"provider_id"`
	ServiceName     string        `bson:"service_name" json:"service_name"`
	ServicePrice    float64       `bson:"service_price" json:"service_price"`
	ServiceDuration int           `bson:"service_duration" json:"service_duration"` // minutes
	BookingDate     time.Time     `bson:"booking_date" json:"booking_date"`
	BookingTime     string        `bson:"booking_time" json:"booking_time"` // "14:30"
	EndTime         string        `bson:"end_time" json:"end_time"`
	Status          BookingStatus `bson:"status" json:"status"`
	CustomerNote    string        `bson:"customer_note,omitempty" json:"customer_note,omitempty"`
	ProviderNote    string        `bson:"provider_note,omitempty" json:"provider_note,omitempty"`
	SpecialRequests string        `bson:"special_requests,omitempty" json:"special_requests,omitempty"`
	PaymentMethod   string        `bson:"payment_method" json:"payment_method"`
	PaymentStatus   string        `bson:"payment_status" json:"payment_status"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updated_at"`
}
