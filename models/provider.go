package models

// ServiceCategory is the closed set of business categories.
type ServiceCategory string

const (
	CategoryRestaurant   ServiceCategory = "restaurant"
	CategoryShop         ServiceCategory = "shop"
	CategoryBeauty       ServiceCategory = "beauty"       // hairdressers, beauticians
	CategoryHealth       ServiceCategory = "health"       // doctors, dentists
	CategoryProfessional ServiceCategory = "professional" // lawyers, accountants
	CategoryHomeServices ServiceCategory = "home_services"
	CategoryOther        ServiceCategory = "other"
)

// Valid reports whether c is one of the known categories.
func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryRestaurant, CategoryShop, CategoryBeauty, CategoryHealth,
		CategoryProfessional, CategoryHomeServices, CategoryOther:
		return true
	}
	return false
}

// Coordinates is a lat/lng pair.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Address struct {
	Street      string       `bson:"street" json:"street"`
	City        string       `bson:"city" json:"city"`
	PostalCode  string       `bson:"postal_code" json:"postal_code"`
	Province    string       `bson:"province,omitempty" json:"province,omitempty"`
	Country     string       `bson:"country" json:"country"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// BusinessHours describes one weekday. Day 0 is Monday.
type BusinessHours struct {
	Day       int    `bson:"day" json:"day"`
	OpenTime  string `bson:"open_time" json:"open_time"`   // "09:00"
	CloseTime string `bson:"close_time" json:"close_time"` // "18:00"
	IsClosed  bool   `bson:"is_closed" json:"is_closed"`
}

type ServiceOffer struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Duration int     `bson:"duration" json:"duration"` // minutes
}

// Provider is a business listed on the marketplace. Providers authenticate
// with the same Account fields as customers.
type Provider struct {
	Account               `bson:",inline"`
	BusinessName          string          `bson:"business_name" json:"business_name"`
	ServiceCategory       ServiceCategory `bson:"service_category" json:"service_category"`
	Description           string          `bson:"description" json:"description"`
	Address               Address         `bson:"address" json:"address"`
	VATNumber             string          `bson:"vat_number,omitempty" json:"vat_number,omitempty"`
	BusinessHours         []BusinessHours `bson:"business_hours" json:"business_hours"`
	ServicesOffered       []ServiceOffer  `bson:"services_offered" json:"services_offered"`
	AcceptsOnlineBookings bool            `bson:"accepts_online_bookings" json:"accepts_online_bookings"`
	Rating                float64         `bson:"rating" json:"rating"`
	TotalReviews          int             `bson:"total_reviews" json:"total_reviews"`
	Tags                  []string        `bson:"tags" json:"tags"`
}
