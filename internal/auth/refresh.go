package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Opaque one-time tokens: refresh tokens keep sessions alive past the short
// JWT expiry, reset tokens back the password-reset email flow.

var ErrTokenInvalid = errors.New("token invalid or expired")

type tokenEntry struct {
	userID    int
	expiresAt time.Time
}

type tokenStore struct {
	mu     sync.Mutex
	tokens map[string]tokenEntry
	ttl    time.Duration
}

func newTokenStore(ttl time.Duration) *tokenStore {
	return &tokenStore{tokens: map[string]tokenEntry{}, ttl: ttl}
}

func (s *tokenStore) issue(userID int) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = tokenEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

func (s *tokenStore) consume(token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[token]
	if !ok || time.Now().After(entry.expiresAt) {
		return 0, ErrTokenInvalid
	}
	delete(s.tokens, token)
	return entry.userID, nil
}

func (s *tokenStore) sweep() {
	s.mu.Lock()
	now := time.Now()
	for token, entry := range s.tokens {
		if now.After(entry.expiresAt) {
			delete(s.tokens, token)
		}
	}
	s.mu.Unlock()
}

var (
	refreshTokens = newTokenStore(7 * 24 * time.Hour)
	resetTokens   = newTokenStore(30 * time.Minute)
)

func IssueRefreshToken(userID int) string { return refreshTokens.issue(userID) }

func ConsumeRefreshToken(token string) (int, error) { return refreshTokens.consume(token) }

func IssueResetToken(userID int) string { return resetTokens.issue(userID) }

func ConsumeResetToken(token string) (int, error) { return resetTokens.consume(token) }

func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		refreshTokens.sweep()
		resetTokens.sweep()
	}
}
