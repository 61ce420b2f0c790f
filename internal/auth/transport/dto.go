package transport

import "github.com/google/uuid"

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginResponse returns the issued access token and the authenticated profile.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	ExpiresIn   int64       `json:"expiresIn"`
	User        MeResponse  `json:"user"`
}

// MeResponse is the authenticated user's profile.
type MeResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	OfficeID *uuid.UUID `json:"officeId,omitempty"`
}
