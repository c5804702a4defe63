package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"merchbase/internal/domain"
	"merchbase/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid username or password")

// AuthConfig is injected at construction so the single-principal setup can
// grow into a user store without touching the service surface.
type AuthConfig struct {
	Username     string
	PasswordHash string // bcrypt
	SessionTTL   time.Duration
}

type AuthService struct {
	Sessions *repos.SessionRepo
	Cfg      AuthConfig
}

// Login validates the admin credential and binds a session to sid. The
// username check is constant-time to match the password comparison.
func (s *AuthService) Login(sid, username, password string) (*domain.Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Cfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.Cfg.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return nil, ErrBadCreds
	}

	exp := time.Now().Add(s.Cfg.SessionTTL)
	if err := s.Sessions.Bind(sid, "admin", username, exp); err != nil {
		return nil, err
	}
	return &domain.Session{ID: sid, UserID: "admin", Username: username, ExpiresAt: exp.Unix()}, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.Delete(sid)
}

// Current returns the live session for sid, or an error if none exists.
func (s *AuthService) Current(sid string) (*domain.Session, error) {
	return s.Sessions.Get(sid)
}
