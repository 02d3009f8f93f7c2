package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	accountService "github.com/allisson/accounts/internal/account/service"
)

// sessionSecretSize is the number of random bytes in a generated session secret.
const sessionSecretSize = 32

// RunCreateSessionSecret generates a random session signing key and prints it as
// environment variables. With kmsKeyURI the key is encrypted by the KMS keeper and
// SESSION_SECRET holds the base64 ciphertext; otherwise it holds base64 key material.
// The URI scheme selects the provider; use base64key://... for local development.
func RunCreateSessionSecret(
	ctx context.Context,
	kmsService accountService.KMSService,
	logger *slog.Logger,
	out io.Writer,
	kmsKeyURI string,
) error {
	key := make([]byte, sessionSecretSize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate session secret: %w", err)
	}
	defer func() {
		for i := range key {
			key[i] = 0
		}
	}()

	if kmsKeyURI == "" {
		logger.Info("generated plaintext session secret")
		_, _ = fmt.Fprintln(out, "# Session secret (plaintext mode)")
		_, _ = fmt.Fprintln(out, "# Copy this environment variable to your .env file or secrets manager")
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintf(out, "SESSION_SECRET=\"%s\"\n", base64.StdEncoding.EncodeToString(key))
		return nil
	}

	encodedKey, err := accountService.WrapSigningKey(ctx, kmsService, kmsKeyURI, key)
	if err != nil {
		return err
	}

	scheme, _, _ := strings.Cut(kmsKeyURI, "://")
	logger.Info("generated KMS encrypted session secret", slog.String("kms_scheme", scheme))
	_, _ = fmt.Fprintln(out, "# Session secret (KMS mode)")
	_, _ = fmt.Fprintln(out, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(out, "SESSION_SECRET=\"%s\"\n", encodedKey)
	return nil
}
