package model

import "time"

type Place struct {
	ID    string `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Owner string `json:"owner,omitempty" bson:"owner" validate:"omitempty,mongodb"`

	Title       string   `json:"title" bson:"title" validate:"required,min=2,max=140"`
	Address     string   `json:"address" bson:"address" validate:"required,min=2,max=250"`
	Photos      []string `json:"photos" bson:"photos" validate:"omitempty,max=100,dive,required"`
	Description string   `json:"description" bson:"description" validate:"omitempty,max=5000"`
	Perks       []string `json:"perks" bson:"perks" validate:"omitempty,max=20,dive,required"`
	ExtraInfo   string   `json:"extraInfo" bson:"extra_info" validate:"omitempty,max=5000"`
	CheckIn     int      `json:"checkIn" bson:"check_in" validate:"min=0,max=23"`
	CheckOut    int      `json:"checkOut" bson:"check_out" validate:"min=0,max=23"`
	MaxGuests   int      `json:"maxGuests" bson:"max_guests" validate:"required,min=1,max=200"`
	Price       int      `json:"price" bson:"price" validate:"min=0"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

// PlaceUpdate carries a full replacement of the mutable place attributes.
// Owner is deliberately absent: ownership is set at creation and immutable.
type PlaceUpdate struct {
	ID string `json:"id" validate:"required,mongodb"`

	Title       string   `json:"title" validate:"required,min=2,max=140"`
	Address     string   `json:"address" validate:"required,min=2,max=250"`
	Photos      []string `json:"photos" validate:"omitempty,max=100,dive,required"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Perks       []string `json:"perks" validate:"omitempty,max=20,dive,required"`
	ExtraInfo   string   `json:"extraInfo" validate:"omitempty,max=5000"`
	CheckIn     int      `json:"checkIn" validate:"min=0,max=23"`
	CheckOut    int      `json:"checkOut" validate:"min=0,max=23"`
	MaxGuests   int      `json:"maxGuests" validate:"required,min=1,max=200"`
	Price       int      `json:"price" validate:"min=0"`
}
