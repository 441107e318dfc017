package dto

import "time"

// RegisterRequest body for POST /api/auth/register.
type RegisterRequest struct {
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=8"`
	Name                string `json:"name" validate:"max=100"`
	Role                string `json:"role" validate:"omitempty,oneof=admin storekeeper clinician"`
	DefaultLocationUUID string `json:"default_location_uuid" validate:"omitempty,uuid4"`
}

// LoginRequest body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse a user without sensitive fields.
type UserResponse struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	Role                string    `json:"role"`
	Status              string    `json:"status"`
	DefaultLocationUUID string    `json:"default_location_uuid,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// LoginResponse token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
