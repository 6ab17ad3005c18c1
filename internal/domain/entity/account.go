// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user of the service.
// Username and Email are each unique across all accounts.
type Account struct {
	ID           uuid.UUID // Assigned at registration, never reused.
	Username     string
	Email        string
	PasswordHash string // Output of the configured PasswordHasher, never the plaintext.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountChanges lists the editable fields of an Account.
// A nil field is left untouched.
type AccountChanges struct {
	Username *string
	Email    *string
	Password *string
}

// IsEmpty reports whether no field is set.
func (c AccountChanges) IsEmpty() bool {
	return c.Username == nil && c.Email == nil && c.Password == nil
}
