package store

import (
	"context"
	"sync"

	"github.com/allisson/journal/internal/auth/domain"
)

// MemoryStore is an in-process RevocationStore. Correct only for
// single-instance deployments: state is not shared and does not survive
// restarts.
type MemoryStore struct {
	mu             sync.RWMutex
	revoked        map[string]bool
	minGenerations map[int64]int64
	nonces         map[string]string
	usedNonces     map[string]map[string]bool
	userSessions   map[int64]map[string]bool
	metadata       map[string]domain.SessionMetadata
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked:        make(map[string]bool),
		minGenerations: make(map[int64]int64),
		nonces:         make(map[string]string),
		usedNonces:     make(map[string]map[string]bool),
		userSessions:   make(map[int64]map[string]bool),
		metadata:       make(map[string]domain.SessionMetadata),
	}
}

// IsRevoked reports whether the session has been revoked.
func (s *MemoryStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revoked[sessionID], nil
}

// Revoke marks the session revoked.
func (s *MemoryStore) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[sessionID] = true
	return nil
}

// GetMinGeneration returns the user's minimum accepted token generation.
func (s *MemoryStore) GetMinGeneration(_ context.Context, userID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minGenerations[userID], nil
}

// SetMinGeneration records the user's minimum accepted token generation.
func (s *MemoryStore) SetMinGeneration(_ context.Context, userID int64, generation int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minGenerations[userID] = generation
	return nil
}

// BumpMinGeneration increments the user's minimum accepted token generation.
func (s *MemoryStore) BumpMinGeneration(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minGenerations[userID]++
	return s.minGenerations[userID], nil
}

// GetRefreshNonce returns the session's current refresh nonce.
func (s *MemoryStore) GetRefreshNonce(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nonces[sessionID], nil
}

// SetRefreshNonce unconditionally sets the session's refresh nonce.
func (s *MemoryStore) SetRefreshNonce(_ context.Context, sessionID, nonce string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nonces[sessionID] = nonce
	return nil
}

// CompareAndSwapRefreshNonce swaps the nonce and marks the old one used in a
// single critical section, so concurrent refreshes see exactly one winner.
func (s *MemoryStore) CompareAndSwapRefreshNonce(
	_ context.Context,
	sessionID, expected, newNonce string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nonces[sessionID] != expected {
		return false, nil
	}

	s.nonces[sessionID] = newNonce
	s.markUsedLocked(sessionID, expected)
	return true, nil
}

// MarkNonceUsed records that a nonce has been consumed for the session.
func (s *MemoryStore) MarkNonceUsed(_ context.Context, sessionID, nonce string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markUsedLocked(sessionID, nonce)
	return nil
}

// markUsedLocked requires s.mu held for writing.
func (s *MemoryStore) markUsedLocked(sessionID, nonce string) {
	used, ok := s.usedNonces[sessionID]
	if !ok {
		used = make(map[string]bool)
		s.usedNonces[sessionID] = used
	}
	used[nonce] = true
}

// IsNonceUsed reports whether the nonce was already consumed for the session.
func (s *MemoryStore) IsNonceUsed(_ context.Context, sessionID, nonce string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usedNonces[sessionID][nonce], nil
}

// AddSessionForUser indexes a session under its user.
func (s *MemoryStore) AddSessionForUser(_ context.Context, userID int64, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addSessionLocked(userID, sessionID)
	return nil
}

// addSessionLocked requires s.mu held for writing.
func (s *MemoryStore) addSessionLocked(userID int64, sessionID string) {
	sessions, ok := s.userSessions[userID]
	if !ok {
		sessions = make(map[string]bool)
		s.userSessions[userID] = sessions
	}
	sessions[sessionID] = true
}

// RemoveSessionForUser removes a session from the user's index.
func (s *MemoryStore) RemoveSessionForUser(_ context.Context, userID int64, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.userSessions[userID], sessionID)
	return nil
}

// ListSessionsForUser returns the ids of the user's indexed sessions.
func (s *MemoryStore) ListSessionsForUser(_ context.Context, userID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.userSessions[userID]))
	for sid := range s.userSessions[userID] {
		sessions = append(sessions, sid)
	}
	return sessions, nil
}

// ListSessionsWithState returns the user's sessions with metadata and flags.
func (s *MemoryStore) ListSessionsWithState(_ context.Context, userID int64) ([]SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make([]SessionState, 0, len(s.userSessions[userID]))
	for sid := range s.userSessions[userID] {
		meta, ok := s.metadata[sid]
		if !ok {
			meta = domain.SessionMetadata{SessionID: sid, UserID: userID}
		}
		states = append(states, SessionState{
			SessionMetadata: meta,
			Revoked:         s.revoked[sid],
		})
	}
	return states, nil
}

// SetSessionMetadata records session metadata and indexes the session.
func (s *MemoryStore) SetSessionMetadata(_ context.Context, meta domain.SessionMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addSessionLocked(meta.UserID, meta.SessionID)
	s.metadata[meta.SessionID] = meta
	return nil
}

// GetSessionMetadata returns the session's state, or nil when unknown.
func (s *MemoryStore) GetSessionMetadata(_ context.Context, sessionID string) (*SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.metadata[sessionID]
	if !ok {
		return nil, nil
	}
	return &SessionState{
		SessionMetadata: meta,
		Revoked:         s.revoked[sessionID],
	}, nil
}

// DeleteSessionMetadata removes the session's metadata.
func (s *MemoryStore) DeleteSessionMetadata(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.metadata, sessionID)
	return nil
}

// RevokeAllForUser marks every indexed session revoked and clears the index.
func (s *MemoryStore) RevokeAllForUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sid := range s.userSessions[userID] {
		s.revoked[sid] = true
	}
	delete(s.userSessions, userID)
	return nil
}
