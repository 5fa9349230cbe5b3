package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/allisson/journal/internal/errors"
)

// ErrInvalidCursor indicates a list cursor that cannot be decoded.
var ErrInvalidCursor = errors.Wrap(errors.ErrInvalidInput, "invalid list cursor")

// ListCursor is an opaque keyset-pagination position over (created_at, id).
// Keyset cursors stay stable under concurrent inserts, unlike offsets.
type ListCursor struct {
	CreatedAt time.Time
	ID        int64
}

// Encode serializes the cursor into an opaque URL-safe string.
func (c ListCursor) Encode() string {
	raw := fmt.Sprintf("%d|%d", c.CreatedAt.UnixMicro(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeListCursor parses an encoded cursor. Returns ErrInvalidCursor for
// anything that does not decode to a "created_at|id" pair.
func DecodeListCursor(encoded string) (*ListCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 2 {
		return nil, ErrInvalidCursor
	}

	createdAtMicro, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidCursor
	}

	return &ListCursor{
		CreatedAt: time.UnixMicro(createdAtMicro).UTC(),
		ID:        id,
	}, nil
}
