// Package auth manages the single dashboard account. Passwords are stored
// as bcrypt hashes; the seed credentials come from the server config and are
// only applied when no account exists yet.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/vmonares/atelierdesk/internal/domain/audit"
	"github.com/vmonares/atelierdesk/internal/store"
)

var (
	// ErrInvalidCredentials is returned on a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeakPassword is returned when a new password is too short.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// User is the persisted account record.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	LoggedIn     bool   `json:"loggedIn"`
}

// AuditLog is the slice of the audit service auth needs.
type AuditLog interface {
	Record(ctx context.Context, action, details string, category audit.Category, severity audit.Severity)
}

// Service authenticates the dashboard user.
type Service struct {
	st     store.Store
	trail  AuditLog
	logger *slog.Logger

	mu   sync.Mutex
	user User
}

// NewService loads the stored account, seeding it from the configured
// credentials when none exists.
func NewService(ctx context.Context, st store.Store, trail AuditLog, seedUsername, seedPassword string, logger *slog.Logger) (*Service, error) {
	s := &Service{st: st, trail: trail, logger: logger}

	err := st.Load(ctx, store.KeyUser, &s.user)
	switch {
	case errors.Is(err, store.ErrNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.user = User{Username: seedUsername, PasswordHash: string(hash)}
		if err := st.Save(ctx, store.KeyUser, s.user); err != nil {
			return nil, err
		}
		logger.Info("seeded initial account", "username", seedUsername)
	case err != nil:
		return nil, err
	}
	return s, nil
}

// Username returns the account name.
func (s *Service) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Username
}

// LoggedIn reports whether a session is active.
func (s *Service) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.LoggedIn
}

// Login verifies the credentials and marks the session active.
func (s *Service) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	ok := username == s.user.Username &&
		bcrypt.CompareHashAndPassword([]byte(s.user.PasswordHash), []byte(password)) == nil
	if ok {
		s.user.LoggedIn = true
		s.save(ctx)
	}
	s.mu.Unlock()

	if !ok {
		s.trail.Record(ctx, "Login Failed",
			"Failed login attempt for "+username,
			audit.CategoryAuth, audit.SeverityWarning)
		return ErrInvalidCredentials
	}
	s.trail.Record(ctx, "Login",
		username+" logged in",
		audit.CategoryAuth, audit.SeveritySuccess)
	return nil
}

// Logout marks the session inactive.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user.LoggedIn = false
	s.save(ctx)
	s.mu.Unlock()

	s.trail.Record(ctx, "Logout",
		s.Username()+" logged out",
		audit.CategoryAuth, audit.SeverityInfo)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	if len(next) < 6 {
		return ErrWeakPassword
	}

	s.mu.Lock()
	if bcrypt.CompareHashAndPassword([]byte(s.user.PasswordHash), []byte(current)) != nil {
		s.mu.Unlock()
		s.trail.Record(ctx, "Password Change Failed",
			"Current password did not match",
			audit.CategoryAuth, audit.SeverityWarning)
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.user.PasswordHash = string(hash)
	s.save(ctx)
	s.mu.Unlock()

	s.trail.Record(ctx, "Password Changed",
		"Account password was updated",
		audit.CategoryAuth, audit.SeveritySuccess)
	return nil
}

// Restore replaces the stored account, used by backup import.
func (s *Service) Restore(ctx context.Context, u User) {
	s.mu.Lock()
	s.user = u
	s.save(ctx)
	s.mu.Unlock()
}

// Snapshot returns a copy of the stored account for backup export.
func (s *Service) Snapshot() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Service) save(ctx context.Context) {
	if err := s.st.Save(ctx, store.KeyUser, s.user); err != nil {
		s.logger.Error("failed to save account", "error", err)
	}
}
