package model

import "time"

type User struct {
	ID           string    `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email,max=254"`
	PasswordHash string    `json:"-" bson:"password_hash" validate:"required"`
	CreatedAt    time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Profile is the identity snapshot returned by GET /profile.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    string `json:"_id"`
}
