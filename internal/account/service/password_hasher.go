package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/accounts/internal/errors"
)

// bcryptPrefixes identify hashes imported from the previous bcrypt-based store.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// passwordHasher implements PasswordHasher using Argon2id, with bcrypt kept for verification only.
type passwordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// Hash hashes a plain text password using Argon2id.
func (p *passwordHasher) Hash(plain string) (string, error) {
	hash, err := p.hasher.Hash([]byte(plain))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify performs a constant-time comparison between a plain password and its hash.
func (p *passwordHasher) Verify(plain, hash string) bool {
	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	}
	ok, err := p.hasher.Verify([]byte(plain), hash)
	if err != nil {
		return false
	}
	return ok
}

// NeedsRehash reports true for bcrypt hashes.
func (p *passwordHasher) NeedsRehash(hash string) bool {
	return isBcrypt(hash)
}

func isBcrypt(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}

// NewPasswordHasher creates a new PasswordHasher using Argon2id hashing.
// Uses the Interactive policy since hashing sits on the login path.
func NewPasswordHasher() PasswordHasher {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &passwordHasher{
		hasher: hasher,
	}
}
