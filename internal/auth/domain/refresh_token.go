package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// RefreshToken is the decoded form of the opaque refresh credential.
// The wire format is the unpadded URL-safe base64 encoding of
// "userID:sessionID:nonce:generation".
type RefreshToken struct {
	UserID     int64
	SessionID  string
	Nonce      string
	Generation int64
}

// Encode serializes the refresh token into its opaque wire form.
func (r RefreshToken) Encode() string {
	raw := fmt.Sprintf("%d:%s:%s:%d", r.UserID, r.SessionID, r.Nonce, r.Generation)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeRefreshToken parses an opaque refresh credential.
// Any corrupted or truncated input fails with ErrTokenMalformed.
func DecodeRefreshToken(token string) (*RefreshToken, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrTokenMalformed
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 4 {
		return nil, ErrTokenMalformed
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrTokenMalformed
	}

	if parts[1] == "" || parts[2] == "" {
		return nil, ErrTokenMalformed
	}

	generation, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || generation < 0 {
		return nil, ErrTokenMalformed
	}

	return &RefreshToken{
		UserID:     userID,
		SessionID:  parts[1],
		Nonce:      parts[2],
		Generation: generation,
	}, nil
}
