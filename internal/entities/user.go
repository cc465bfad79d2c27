package entities

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleDonor  Role = "donor"
	RolePantry Role = "pantry"
	RoleAdmin  Role = "admin"
)

// ParseRole converts a raw role string into a Role, rejecting anything
// outside the known set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleDonor, RolePantry, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User represents a user entity in the database
type User struct {
	ID                string     `json:"id"` // UUID
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"` // Don't expose password hash in JSON
	Role              Role       `json:"role"`
	EmailVerified     bool       `json:"email_verified"`
	VerificationToken *string    `json:"-"` // Present until the email is verified
	ResetToken        *string    `json:"-"` // Present only during an active reset window
	ResetTokenExpires *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
