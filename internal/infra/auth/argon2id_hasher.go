package auth

import (
	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"

	"accounts/internal/domain/service"
)

// argon2idHasher hashes the peppered password with argon2id in PHC string format.
type argon2idHasher struct {
	params *argon2id.Params
	pepper string
}

// NewArgon2idHasher is the constructor for argon2idHasher. A nil params uses argon2id.DefaultParams.
func NewArgon2idHasher(pepper string, params *argon2id.Params) (service.PasswordHasher, error) {
	if pepper == "" {
		return nil, errors.New("hash secret key must be provided")
	}
	if params == nil {
		params = argon2id.DefaultParams
	}

	return &argon2idHasher{params: params, pepper: pepper}, nil
}

func (h *argon2idHasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(KeyedDigest(password, h.pepper), h.params)
	if err != nil {
		return "", errors.Wrap(err, "argon2id create hash")
	}

	return hash, nil
}

// Check reports false for a mismatch and for a hash that is not argon2id.
func (h *argon2idHasher) Check(password, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(KeyedDigest(password, h.pepper), hash)

	return err == nil && match
}
