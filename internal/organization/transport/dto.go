package transport

import "github.com/google/uuid"

// CreateOfficeRequest contains data for registering a new office.
type CreateOfficeRequest struct {
	Name              string     `json:"name" validate:"required,min=2,max=120"`
	OwnerID           *uuid.UUID `json:"ownerId,omitempty"`
	BusinessManagerID *uuid.UUID `json:"businessManagerId,omitempty"`
	SeniorManagerID   *uuid.UUID `json:"seniorManagerId,omitempty"`
}

// OfficeResponse represents an office in API responses.
type OfficeResponse struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	OwnerID           *uuid.UUID `json:"ownerId,omitempty"`
	BusinessManagerID *uuid.UUID `json:"businessManagerId,omitempty"`
	SeniorManagerID   *uuid.UUID `json:"seniorManagerId,omitempty"`
	CreatedAt         string     `json:"createdAt"`
}

// OfficeListResponse wraps a list of offices.
type OfficeListResponse struct {
	Items []OfficeResponse `json:"items"`
	Total int              `json:"total"`
}

// CreateUserRequest contains data for registering a user in the hierarchy.
type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required,min=2,max=120"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	Role     string     `json:"role" validate:"required"`
	OfficeID *uuid.UUID `json:"officeId,omitempty"`
	OwnerID  *uuid.UUID `json:"ownerId,omitempty"`
}

// UserResponse represents a user in API responses. Password hashes never leave
// the repository layer.
type UserResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	OfficeID *uuid.UUID `json:"officeId,omitempty"`
	OwnerID  *uuid.UUID `json:"ownerId,omitempty"`
	Active   bool       `json:"active"`
}

// UserListResponse wraps a list of users.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
}

// ListUsersRequest carries the directory list filters.
type ListUsersRequest struct {
	Role     string `form:"role"`
	OfficeID string `form:"officeId"`
}
