package dto

import (
	"time"

	authDomain "github.com/allisson/journal/internal/auth/domain"
	"github.com/allisson/journal/internal/auth/store"
)

// TokenPairResponse carries a freshly issued access/refresh token pair.
type TokenPairResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewTokenPairResponse maps a domain token pair to its response form.
func NewTokenPairResponse(pair *authDomain.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    pair.ExpiresAt,
	}
}

// SessionResponse describes one session of the authenticated user.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	UserAgent string    `json:"user_agent"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `json:"revoked"`
}

// SessionListResponse carries the sessions of the authenticated user.
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// NewSessionListResponse maps session states to their response form.
func NewSessionListResponse(states []store.SessionState) SessionListResponse {
	sessions := make([]SessionResponse, 0, len(states))
	for _, state := range states {
		sessions = append(sessions, SessionResponse{
			SessionID: state.SessionID,
			UserAgent: state.UserAgent,
			IP:        state.IP,
			CreatedAt: state.CreatedAt,
			Revoked:   state.Revoked,
		})
	}
	return SessionListResponse{Sessions: sessions}
}
