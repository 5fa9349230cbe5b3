// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/journal/internal/auth/domain"
	"github.com/allisson/journal/internal/auth/store"
	authUseCase "github.com/allisson/journal/internal/auth/usecase"
)

// MockSessionUseCase is a mock implementation of SessionUseCase for testing.
type MockSessionUseCase struct {
	mock.Mock
}

// Login mocks the Login method of SessionUseCase.
func (m *MockSessionUseCase) Login(
	ctx context.Context,
	input *authUseCase.LoginInput,
) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

// Refresh mocks the Refresh method of SessionUseCase.
func (m *MockSessionUseCase) Refresh(
	ctx context.Context,
	refreshToken string,
) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

// Logout mocks the Logout method of SessionUseCase.
func (m *MockSessionUseCase) Logout(ctx context.Context, principal *authDomain.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

// RevokeSession mocks the RevokeSession method of SessionUseCase.
func (m *MockSessionUseCase) RevokeSession(
	ctx context.Context,
	principal *authDomain.Principal,
	sessionID string,
) error {
	args := m.Called(ctx, principal, sessionID)
	return args.Error(0)
}

// ListSessions mocks the ListSessions method of SessionUseCase.
func (m *MockSessionUseCase) ListSessions(
	ctx context.Context,
	principal *authDomain.Principal,
) ([]store.SessionState, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.SessionState), args.Error(1)
}

// RevokeAllForUser mocks the RevokeAllForUser method of SessionUseCase.
func (m *MockSessionUseCase) RevokeAllForUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAuthenticator is a mock implementation of Authenticator for testing.
type MockAuthenticator struct {
	mock.Mock
}

// Authenticate mocks the Authenticate method of Authenticator.
func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*authDomain.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}
