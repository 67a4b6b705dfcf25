package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/wolhaven/atelier/internal/domain"
)

// SessionStore holds active admin session tokens in memory. The site
// has a single shared admin credential, so an in-process store is
// sufficient.
type SessionStore struct {
	password string
	ttl      time.Duration

	mu     sync.RWMutex
	tokens map[string]time.Time // token -> expiry
}

func NewSessionStore(password string, ttl time.Duration) *SessionStore {
	return &SessionStore{
		password: password,
		ttl:      ttl,
		tokens:   make(map[string]time.Time),
	}
}

// Login checks the shared admin password and returns a fresh session
// token on success.
func (s *SessionStore) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", fmt.Errorf("%w: invalid password", domain.ErrUnauthorized)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.tokens[token] = time.Now().Add(s.ttl)
	s.mu.Unlock()

	return token, nil
}

// Valid reports whether the token exists and has not expired.
func (s *SessionStore) Valid(token string) bool {
	s.mu.RLock()
	exp, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return false
	}
	return true
}

// Logout removes a session token.
func (s *SessionStore) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
