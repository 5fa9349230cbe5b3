package domain

import "time"

// SessionMetadata describes a live session for listing and auditing.
type SessionMetadata struct {
	SessionID string
	UserID    int64
	UserAgent string
	IP        string
	CreatedAt time.Time
}
