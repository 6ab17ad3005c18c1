package auth

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"accounts/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// The password is peppered with KeyedDigest first, which also keeps the
// input under bcrypt's 72 byte limit.
type bcryptHasher struct {
	cost   int
	pepper string
}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher(pepper string, cost int) (service.PasswordHasher, error) {
	if pepper == "" {
		return nil, errors.New("hash secret key must be provided")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return &bcryptHasher{cost: cost, pepper: pepper}, nil
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(KeyedDigest(password, h.pepper)), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt generate")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(KeyedDigest(password, h.pepper)))

	return err == nil
}
