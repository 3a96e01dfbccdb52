package store

import (
	"context"
	"sync"
)

// MockCredentials is an in-memory credential store for tests.
type MockCredentials struct {
	mu      sync.Mutex
	Session Session

	TokenError error
	SaveError  error
	ClearError error
}

// Token returns the in-memory token.
func (m *MockCredentials) Token(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TokenError != nil {
		return "", m.TokenError
	}
	return m.Session.Token, nil
}

// Save replaces the in-memory session.
func (m *MockCredentials) Save(session Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Session = session
	return nil
}

// Clear forgets the session.
func (m *MockCredentials) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearError != nil {
		return m.ClearError
	}
	m.Session = Session{}
	return nil
}
