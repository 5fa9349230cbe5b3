package domain

import "time"

// TokenSubject carries the identity and grants embedded into a new access token.
type TokenSubject struct {
	UserID       int64
	Username     string
	Role         Role
	Capabilities []Capability
	SessionID    string
	Generation   int64
}

// AccessToken is a signed, short-lived credential.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenPair bundles the access token with its rotating refresh credential.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
