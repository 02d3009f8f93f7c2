package service

import (
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

func TestCodeGenerator_NewEmailVerificationCode(t *testing.T) {
	generator := NewCodeGenerator()

	t.Run("Success_SixDigits", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code, err := generator.NewEmailVerificationCode()
			require.NoError(t, err)
			assert.Regexp(t, sixDigits, code)
		}
	})

	t.Run("Success_KeepsLeadingZeros", func(t *testing.T) {
		// Leading digits are drawn independently, so a zero must eventually show up.
		seenLeadingZero := false
		for i := 0; i < 1000 && !seenLeadingZero; i++ {
			code, err := generator.NewEmailVerificationCode()
			require.NoError(t, err)
			seenLeadingZero = code[0] == '0'
		}
		assert.True(t, seenLeadingZero)
	})
}

func TestCodeGenerator_NewRecoveryToken(t *testing.T) {
	generator := NewCodeGenerator()

	token, err := generator.NewRecoveryToken()
	require.NoError(t, err)

	decoded, err := hex.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)

	other, err := generator.NewRecoveryToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestCodeGenerator_HashCode(t *testing.T) {
	generator := NewCodeGenerator()

	t.Run("Success_KnownDigest", func(t *testing.T) {
		assert.Equal(
			t,
			"8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92",
			generator.HashCode("123456"),
		)
	})

	t.Run("Success_Deterministic", func(t *testing.T) {
		assert.Equal(t, generator.HashCode("654321"), generator.HashCode("654321"))
		assert.NotEqual(t, generator.HashCode("654321"), generator.HashCode("654322"))
	})
}
