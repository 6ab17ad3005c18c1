// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"

	"accounts/internal/domain/service"
)

// KeyedDigest is the deterministic keyed one-way transform of a secret:
// hex(HMAC-SHA256(key, plaintext)). Identical inputs always give identical output.
func KeyedDigest(plaintext, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(plaintext))

	return hex.EncodeToString(mac.Sum(nil))
}

// keyedHasher stores KeyedDigest directly. It reproduces the hashes written
// by the first version of the service and has no per-account salt.
type keyedHasher struct {
	key string
}

// NewKeyedHasher returns a PasswordHasher that stores the bare keyed digest.
func NewKeyedHasher(key string) (service.PasswordHasher, error) {
	if key == "" {
		return nil, errors.New("hash secret key must be provided")
	}

	return &keyedHasher{key: key}, nil
}

func (h *keyedHasher) Hash(password string) (string, error) {
	return KeyedDigest(password, h.key), nil
}

func (h *keyedHasher) Check(password, hash string) bool {
	return hmac.Equal([]byte(KeyedDigest(password, h.key)), []byte(hash))
}
