package service

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	"github.com/allisson/journal/internal/config"
)

func TestLoadSigningKey_FromHex(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}

	cfg := &config.Config{TokenSigningKeyHex: hex.EncodeToString(seed)}

	key, err := LoadSigningKey(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, ed25519.NewKeyFromSeed(seed), key)
}

func TestLoadSigningKey_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "not configured",
			cfg:  &config.Config{},
		},
		{
			name: "invalid hex",
			cfg:  &config.Config{TokenSigningKeyHex: "not-hex"},
		},
		{
			name: "wrong seed size",
			cfg:  &config.Config{TokenSigningKeyHex: "deadbeef"},
		},
		{
			name: "invalid ciphertext base64",
			cfg: &config.Config{
				TokenSigningKeyCiphertext: "!!!not-base64!!!",
				KMSKeyURI:                 "base64key://",
			},
		},
		{
			name: "invalid KMS key URI",
			cfg: &config.Config{
				TokenSigningKeyCiphertext: "bm90LWEtcmVhbC1jaXBoZXJ0ZXh0",
				KMSKeyURI:                 "unknown-scheme://key",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := LoadSigningKey(context.Background(), tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, key)
		})
	}
}

func TestLoadSigningKey_FromKMS(t *testing.T) {
	ctx := context.Background()

	// base64key uses a local in-memory keeper, no external KMS needed
	keyURI := "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	require.NoError(t, err)
	defer keeper.Close()

	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(0xA0 + i)
	}
	ciphertext, err := keeper.Encrypt(ctx, seed)
	require.NoError(t, err)

	cfg := &config.Config{
		TokenSigningKeyCiphertext: base64.StdEncoding.EncodeToString(ciphertext),
		KMSKeyURI:                 keyURI,
	}

	key, err := LoadSigningKey(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, ed25519.NewKeyFromSeed(seed), key)
}

func TestLoadSigningKey_KMSTakesPrecedence(t *testing.T) {
	ctx := context.Background()
	keyURI := "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	require.NoError(t, err)
	defer keeper.Close()

	kmsSeed := make([]byte, ed25519.SeedSize)
	kmsSeed[0] = 0x01
	ciphertext, err := keeper.Encrypt(ctx, kmsSeed)
	require.NoError(t, err)

	hexSeed := make([]byte, ed25519.SeedSize)
	hexSeed[0] = 0x02

	cfg := &config.Config{
		TokenSigningKeyHex:        hex.EncodeToString(hexSeed),
		TokenSigningKeyCiphertext: base64.StdEncoding.EncodeToString(ciphertext),
		KMSKeyURI:                 keyURI,
	}

	key, err := LoadSigningKey(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, ed25519.NewKeyFromSeed(kmsSeed), key)
}
