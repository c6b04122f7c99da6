package connection

import "sync"

// TokenSource supplies the bearer token for an outgoing request.
// An empty string means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// TokenStore holds at most one bearer token. Only the session manager
// writes it; the HTTP client reads it once per request.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Set overwrites the held token. Set("") is the same as Clear.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear drops the held token.
func (s *TokenStore) Clear() {
	s.Set("")
}

// Token returns the held token, or "" if none.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// StaticToken is a TokenSource that always returns the same value.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }
