package model

import "time"

type Booking struct {
	ID      string `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PlaceID string `json:"place" bson:"place" validate:"required,mongodb"`
	UserID  string `json:"user,omitempty" bson:"user" validate:"omitempty,mongodb"`

	CheckIn        time.Time `json:"checkIn" bson:"check_in" validate:"required"`
	CheckOut       time.Time `json:"checkOut" bson:"check_out" validate:"required,gtfield=CheckIn"`
	NumberOfGuests int       `json:"numberOfGuests" bson:"number_of_guests" validate:"required,min=1,max=200"`
	Name           string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone          string    `json:"phone" bson:"phone" validate:"omitempty,e164"`
	Price          int       `json:"price" bson:"price" validate:"min=0"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// BookingWithPlace is the read-side shape of GET /bookings: the stored place
// reference resolved to the full document. The outer Place field shadows the
// embedded PlaceID on the wire.
type BookingWithPlace struct {
	Booking
	Place *Place `json:"place"`
}
