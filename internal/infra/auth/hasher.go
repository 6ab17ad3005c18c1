package auth

import (
	"github.com/pkg/errors"

	"accounts/config"
	"accounts/internal/domain/service"
)

// NewPasswordHasher builds the hasher selected by auth.hasher, keyed by secretKey.hash.
func NewPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	scheme := config.HasherBcrypt
	cost := 0
	if cfg.Auth != nil {
		if cfg.Auth.Hasher != "" {
			scheme = cfg.Auth.Hasher
		}
		cost = cfg.Auth.BcryptCost
	}

	switch scheme {
	case config.HasherBcrypt:
		return NewBcryptHasher(cfg.SecretKey.Hash, cost)
	case config.HasherArgon2id:
		return NewArgon2idHasher(cfg.SecretKey.Hash, nil)
	case config.HasherHMAC:
		return NewKeyedHasher(cfg.SecretKey.Hash)
	default:
		return nil, errors.Errorf("unknown password hasher: %s", scheme)
	}
}
