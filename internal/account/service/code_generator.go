package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	apperrors "github.com/allisson/accounts/internal/errors"
)

const (
	// EmailVerificationCodeLength is the number of digits of an email verification code.
	EmailVerificationCodeLength = 6

	// recoveryTokenBytes is the entropy of a recovery token before hex encoding.
	recoveryTokenBytes = 32
)

// codeGenerator implements CodeGenerator using crypto/rand and SHA-256.
type codeGenerator struct{}

// NewEmailVerificationCode draws each digit uniformly from crypto/rand.
func (g *codeGenerator) NewEmailVerificationCode() (string, error) {
	digits := make([]byte, EmailVerificationCodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", apperrors.Wrap(err, "failed to generate random digit")
		}
		//nolint:gosec // n is bounded [0,9] by big.NewInt(10), safe conversion
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// NewRecoveryToken creates a new 32-byte random token, hex encoded so it is URL safe.
func (g *codeGenerator) NewRecoveryToken() (string, error) {
	randomBytes := make([]byte, recoveryTokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random token")
	}
	return hex.EncodeToString(randomBytes), nil
}

// HashCode hashes a plain text code using SHA-256.
// Returns the hash as a hexadecimal string.
func (g *codeGenerator) HashCode(code string) string {
	hash := sha256.Sum256([]byte(code))
	return hex.EncodeToString(hash[:])
}

// NewCodeGenerator creates a new CodeGenerator instance.
func NewCodeGenerator() CodeGenerator {
	return &codeGenerator{}
}
