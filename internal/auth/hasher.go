package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	// HashSize is the HMAC-SHA512 digest length in bytes.
	HashSize = sha512.Size
	// SaltSize is the HMAC-SHA512 key length in bytes. The salt doubles as
	// the keyed-hash key.
	SaltSize = 128
)

// HashPassword derives a fresh (hash, salt) pair from the plaintext.
// The salt is random per call, so two calls with the same password yield
// different pairs and hash equality across accounts never implies password
// equality.
func HashPassword(password string) (hash, salt []byte, err error) {
	if strings.TrimSpace(password) == "" {
		return nil, nil, ErrPasswordRequired
	}

	salt = make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to generate password salt")
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil), salt, nil
}

// VerifyPassword recomputes the keyed hash of password under storedSalt and
// compares it against storedHash in constant time.
func VerifyPassword(password string, storedHash, storedSalt []byte) (bool, error) {
	if strings.TrimSpace(password) == "" {
		return false, ErrPasswordRequired
	}

	if len(storedHash) != HashSize {
		return false, errors.New("invalid password hash length (64 bytes expected)", errors.CategoryBadInput).
			WithTextCode(TextCodeInvalidHashLength).
			WithMetadata(map[string]any{"field": "passwordHash", "length": len(storedHash)})
	}

	if len(storedSalt) != SaltSize {
		return false, errors.New("invalid password salt length (128 bytes expected)", errors.CategoryBadInput).
			WithTextCode(TextCodeInvalidSaltLength).
			WithMetadata(map[string]any{"field": "passwordSalt", "length": len(storedSalt)})
	}

	mac := hmac.New(sha512.New, storedSalt)
	mac.Write([]byte(password))
	computed := mac.Sum(nil)

	return subtle.ConstantTimeCompare(computed, storedHash) == 1, nil
}
