// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned when a write would give two accounts the
	// same id, username or email. Stores enforce this themselves (unique index
	// or constraint), so it is the authoritative uniqueness signal.
	ErrDuplicateAccount = errors.New("account with this username or email already exists")
)

// AccountRepository defines the standard operations for account persistence.
// Any error other than the sentinels above means the store itself failed.
type AccountRepository interface {
	// Create persists a new account. It returns ErrDuplicateAccount on a uniqueness violation.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by its identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Update overwrites username, email and password hash of an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// DeleteByID removes the account. Deleting a missing account is not an error.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// ListUsernames returns every username, ascending.
	ListUsernames(ctx context.Context) ([]string, error)
}
