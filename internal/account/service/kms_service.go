package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// LoadSigningKey resolves the session signing key. Without a keyURI the secret is used verbatim;
// otherwise it is base64 KMS ciphertext decrypted once through the keeper.
func LoadSigningKey(ctx context.Context, kms KMSService, keyURI, secret string) ([]byte, error) {
	if keyURI == "" {
		key := []byte(secret)
		if len(key) < MinSigningKeyLength {
			return nil, ErrSigningKeyTooShort
		}
		return key, nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session secret ciphertext: %w", err)
	}

	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session secret: %w", err)
	}
	if len(key) < MinSigningKeyLength {
		return nil, ErrSigningKeyTooShort
	}
	return key, nil
}

// WrapSigningKey encrypts key with the keeper at keyURI and returns base64 ciphertext
// suitable for SESSION_SECRET.
func WrapSigningKey(ctx context.Context, kms KMSService, keyURI string, key []byte) (string, error) {
	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt session secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
