package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pickemleague/internal/security"
	"pickemleague/internal/session"
	"pickemleague/internal/store"
	"pickemleague/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrSessionNotFound    = errors.New("session not found")
)

// AuthService handles login, auto-registration, and sessions. There is
// no separate registration flow: the first login with an unseen
// username creates the account.
type AuthService struct {
	store    *store.Store
	sessions *session.Store
	logger   *zap.SugaredLogger
}

// NewAuthService creates a new auth service.
func NewAuthService(store *store.Store, sessions *session.Store, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		store:    store,
		sessions: sessions,
		logger:   logger,
	}
}

// Login authenticates a user and creates a session. An unseen username
// is registered with the given password and logged straight in;
// created reports that case so the caller can welcome the new player.
func (s *AuthService) Login(username, password string) (session.Session, bool, error) {
	username, err := validation.ValidateUsername(username)
	if err != nil {
		return session.Session{}, false, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return session.Session{}, false, err
	}

	users := s.store.LoadUsers()
	created := false

	hash, exists := users[username]
	if !exists {
		newHash, err := security.HashPassword(password)
		if err != nil {
			return session.Session{}, false, fmt.Errorf("failed to hash password: %w", err)
		}
		users[username] = newHash
		if err := s.store.SaveUsers(users); err != nil {
			return session.Session{}, false, fmt.Errorf("failed to save account: %w", err)
		}
		created = true
		s.logger.Infof("Created account for %s", username)
	} else if !security.CheckPassword(password, hash) {
		return session.Session{}, false, ErrInvalidCredentials
	}

	return s.sessions.Create(username), created, nil
}

// UserExists reports whether an account with this username exists.
func (s *AuthService) UserExists(username string) bool {
	_, ok := s.store.LoadUsers()[username]
	return ok
}

// ValidateSession resolves a session ID to its username.
func (s *AuthService) ValidateSession(sessionID string) (string, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return "", ErrSessionNotFound
	}
	return sess.Username, nil
}

// Logout invalidates a session. Idempotent.
func (s *AuthService) Logout(sessionID string) {
	s.sessions.Delete(sessionID)
}

// CleanupExpiredSessions removes expired sessions from the registry.
func (s *AuthService) CleanupExpiredSessions() int {
	return s.sessions.DeleteExpired()
}
