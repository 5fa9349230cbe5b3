package domain

import (
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshToken_EncodeDecode(t *testing.T) {
	original := RefreshToken{
		UserID:     42,
		SessionID:  uuid.NewString(),
		Nonce:      uuid.NewString(),
		Generation: 3,
	}

	encoded := original.Encode()

	// Opaque on the wire: no separators visible
	assert.NotContains(t, encoded, ":")

	decoded, err := DecodeRefreshToken(encoded)
	require.NoError(t, err)
	assert.Equal(t, &original, decoded)
}

func TestDecodeRefreshToken_Malformed(t *testing.T) {
	valid := RefreshToken{
		UserID:     7,
		SessionID:  uuid.NewString(),
		Nonce:      uuid.NewString(),
		Generation: 0,
	}.Encode()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not base64", token: "!!!not-base64!!!"},
		{
			name:  "wrong field count",
			token: base64.RawURLEncoding.EncodeToString([]byte("1:sid:nonce")),
		},
		{
			name:  "too many fields",
			token: base64.RawURLEncoding.EncodeToString([]byte("1:sid:nonce:0:extra")),
		},
		{
			name:  "non-numeric user id",
			token: base64.RawURLEncoding.EncodeToString([]byte("abc:sid:nonce:0")),
		},
		{
			name:  "zero user id",
			token: base64.RawURLEncoding.EncodeToString([]byte("0:sid:nonce:0")),
		},
		{
			name:  "empty session id",
			token: base64.RawURLEncoding.EncodeToString([]byte("1::nonce:0")),
		},
		{
			name:  "empty nonce",
			token: base64.RawURLEncoding.EncodeToString([]byte("1:sid::0")),
		},
		{
			name:  "non-numeric generation",
			token: base64.RawURLEncoding.EncodeToString([]byte("1:sid:nonce:x")),
		},
		{
			name:  "negative generation",
			token: base64.RawURLEncoding.EncodeToString([]byte("1:sid:nonce:-1")),
		},
		{name: "truncated encoding", token: valid[:len(valid)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeRefreshToken(tt.token)
			assert.ErrorIs(t, err, ErrTokenMalformed)
			assert.Nil(t, decoded)
		})
	}
}
