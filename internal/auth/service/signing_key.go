package service

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"

	"gocloud.dev/secrets"

	"github.com/allisson/journal/internal/config"
	apperrors "github.com/allisson/journal/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// LoadSigningKey resolves the Ed25519 signing key from configuration.
//
// When TokenSigningKeyCiphertext and KMSKeyURI are both set, the seed is
// unwrapped through a gocloud.dev secrets keeper. Otherwise the hex-encoded
// seed from TokenSigningKeyHex is used directly.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func LoadSigningKey(ctx context.Context, cfg *config.Config) (ed25519.PrivateKey, error) {
	if cfg.TokenSigningKeyCiphertext != "" && cfg.KMSKeyURI != "" {
		return loadWrappedSigningKey(ctx, cfg)
	}

	if cfg.TokenSigningKeyHex == "" {
		return nil, apperrors.New("token signing key is not configured")
	}

	seed, err := hex.DecodeString(cfg.TokenSigningKeyHex)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode token signing key hex")
	}

	return keyFromSeed(seed)
}

// loadWrappedSigningKey decrypts the KMS-wrapped seed through a secrets keeper.
func loadWrappedSigningKey(ctx context.Context, cfg *config.Config) (ed25519.PrivateKey, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(cfg.TokenSigningKeyCiphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode token signing key ciphertext")
	}

	keeper, err := secrets.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open KMS keeper")
	}
	defer keeper.Close()

	seed, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt token signing key")
	}

	return keyFromSeed(seed)
}

func keyFromSeed(seed []byte) (ed25519.PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, apperrors.New("token signing key seed must be 32 bytes")
	}
	return ed25519.NewKeyFromSeed(seed), nil
}
