// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
type SignUpInput struct {
	Username string
	Email    string
	Password string
}

// SignInInput defines the credentials presented to sign in.
type SignInInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// SignInOutput carries the session token minted on a successful sign-in.
type SignInOutput struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// AccountUsecase defines the account operations the delivery layer depends on.
// Session verification happens before Edit, Delete and ListUsernames are
// reached; they receive the account id carried by the verified token.
type AccountUsecase interface {
	Register(ctx context.Context, input SignUpInput) error
	Authenticate(ctx context.Context, input SignInInput) (*SignInOutput, error)
	Edit(ctx context.Context, accountID uuid.UUID, changes entity.AccountChanges) error
	Delete(ctx context.Context, accountID uuid.UUID) error
	ListUsernames(ctx context.Context) ([]string, error)
}
