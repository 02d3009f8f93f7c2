package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))

	err := Wrap(ErrConflict, "email already registered")
	assert.EqualError(t, err, "email already registered: conflict")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestWrapf(t *testing.T) {
	assert.NoError(t, Wrapf(nil, "ignored %d", 1))

	err := Wrapf(ErrUnavailable, "store call exceeded %s", "5s")
	assert.EqualError(t, err, "store call exceeded 5s: unavailable")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestIs_ThroughLayers(t *testing.T) {
	domainErr := Wrap(ErrInvalidOrExpired, "verification code")
	layered := fmt.Errorf("verify email: %w", Wrap(domainErr, "repository"))

	assert.True(t, Is(layered, ErrInvalidOrExpired))
	assert.True(t, Is(layered, domainErr))
	assert.False(t, Is(layered, ErrAuthentication))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrInvalidInput,
		ErrAuthentication,
		ErrInvalidOrExpired,
		ErrUnauthorized,
		ErrUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestNew(t *testing.T) {
	err := New("mail delivery failed")
	assert.EqualError(t, err, "mail delivery failed")
	assert.NotErrorIs(t, err, New("mail delivery failed"))
}
