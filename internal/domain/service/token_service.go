package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned when a well-signed token is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalidSignature is returned for every other verification failure:
	// wrong key, tampered payload or signature, malformed token.
	ErrTokenInvalidSignature = errors.New("token signature invalid")
)

// Claims is the verified content of a session token.
type Claims struct {
	AccountID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	// IssueToken creates a signed token for the account, valid for TokenTTL.
	IssueToken(accountID uuid.UUID) (string, error)

	// VerifyToken returns the claims of a valid token, or ErrTokenExpired / ErrTokenInvalidSignature.
	VerifyToken(tokenString string) (*Claims, error)

	// TokenTTL returns the lifetime given to issued tokens.
	TokenTTL() time.Duration
}
