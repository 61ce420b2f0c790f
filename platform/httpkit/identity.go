// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated user's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access user information without depending on Gin.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// Role returns the user's hierarchy role.
	Role() string
	// OfficeID returns the user's office, when the role is office-bound.
	OfficeID() *uuid.UUID
	// HasRole checks if the user has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	role          string
	officeID      *uuid.UUID
	authenticated bool
}

func (i *identity) UserID() uuid.UUID {
	return i.userID
}

func (i *identity) Role() string {
	return i.role
}

func (i *identity) OfficeID() *uuid.UUID {
	return i.officeID
}

func (i *identity) HasRole(role string) bool {
	return i.role == role
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	if !userOK {
		return &identity{authenticated: false}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	role, _ := c.Get(ContextRoleKey)
	roleValue, _ := role.(string)

	var officeID *uuid.UUID
	if raw, ok := c.Get(ContextOfficeIDKey); ok {
		if parsed, ok := raw.(uuid.UUID); ok {
			officeID = &parsed
		}
	}

	return &identity{
		userID:        uid,
		role:          roleValue,
		officeID:      officeID,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
