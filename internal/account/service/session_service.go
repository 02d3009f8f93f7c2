package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/allisson/accounts/internal/account/domain"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// ErrSigningKeyTooShort is returned when the session signing key has fewer than MinSigningKeyLength bytes.
var ErrSigningKeyTooShort = errors.New("session signing key must be at least 32 bytes")

// MinSigningKeyLength is the minimum HS256 key size accepted.
const MinSigningKeyLength = 32

// sessionClaims carries the account id in the standard subject claim.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// sessionService implements SessionService with HS256 JWTs.
type sessionService struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Issue signs a token whose subject is accountID.
func (s *sessionService) Issue(accountID uuid.UUID) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign session token")
	}
	// NumericDate has second precision; report what the token actually says.
	return signed, expiresAt.Truncate(time.Second), nil
}

// Verify checks signature, algorithm, issuer and expiry in a single parse.
func (s *sessionService) Verify(tokenString string) (uuid.UUID, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrSessionInvalid
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrSessionInvalid
	}
	return accountID, nil
}

// NewSessionService creates a SessionService signing with key.
// The key must be at least MinSigningKeyLength bytes.
func NewSessionService(key []byte, ttl time.Duration, issuer string) (SessionService, error) {
	service, err := newSessionService(key, ttl, issuer, time.Now)
	if err != nil {
		return nil, err
	}
	return service, nil
}

func newSessionService(key []byte, ttl time.Duration, issuer string, now func() time.Time) (*sessionService, error) {
	if len(key) < MinSigningKeyLength {
		return nil, ErrSigningKeyTooShort
	}
	return &sessionService{
		key:    key,
		ttl:    ttl,
		issuer: issuer,
		now:    now,
	}, nil
}
