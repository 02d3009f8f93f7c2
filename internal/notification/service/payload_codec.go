package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"gocloud.dev/secrets"
	"gocloud.dev/secrets/localsecrets"
	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/notification/domain"
)

const payloadKeyInfo = "accounts/outbox-payload/v1"

// PayloadCodec seals email payloads before they are written to the outbox, so
// verification codes and reset links are never stored in plaintext.
type PayloadCodec struct {
	keeper *secrets.Keeper
}

// NewPayloadCodec creates a PayloadCodec over an open keeper. The codec owns the keeper.
func NewPayloadCodec(keeper *secrets.Keeper) *PayloadCodec {
	return &PayloadCodec{keeper: keeper}
}

// NewLocalPayloadCodec derives a dedicated payload key from the session signing key
// with HKDF-SHA256 and opens a local keeper with it.
func NewLocalPayloadCodec(signingKey []byte) (*PayloadCodec, error) {
	var key [32]byte
	if _, err := io.ReadFull(hkdf.New(sha256.New, signingKey, nil, []byte(payloadKeyInfo)), key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive outbox payload key: %w", err)
	}
	return NewPayloadCodec(localsecrets.NewKeeper(key)), nil
}

// Seal encodes payload as JSON, encrypts it and returns base64 ciphertext.
func (c *PayloadCodec) Seal(ctx context.Context, payload domain.EmailPayload) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encode event payload")
	}

	ciphertext, err := c.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to seal event payload")
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Open reverses Seal. Anything that cannot be decoded or decrypted is ErrInvalidPayload,
// which fails the event without retries.
func (c *PayloadCodec) Open(ctx context.Context, sealed string) (domain.EmailPayload, error) {
	var payload domain.EmailPayload

	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return payload, apperrors.Wrap(domain.ErrInvalidPayload, err.Error())
	}

	plaintext, err := c.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return payload, apperrors.Wrap(domain.ErrInvalidPayload, "cannot decrypt payload")
	}

	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return payload, apperrors.Wrap(domain.ErrInvalidPayload, err.Error())
	}
	return payload, nil
}

// Close releases the underlying keeper.
func (c *PayloadCodec) Close() error {
	return c.keeper.Close()
}
