package services

import (
	"github.com/academy-labs/academy-api/config"
	apperrors "github.com/academy-labs/academy-api/pkg/errors"
	"github.com/academy-labs/academy-api/pkg/metrics"
	"github.com/academy-labs/academy-api/pkg/token"
)

// AuthService validates credentials against the single configured admin
// identity. Session bookkeeping lives in the handler and middleware; this
// service only answers whether a credential pair is acceptable.
type AuthService struct {
	cfg *config.AdminConfig
}

// NewAuthService creates a new auth service instance
func NewAuthService(cfg *config.AdminConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

// Configured reports whether an admin identity is set.
func (s *AuthService) Configured() bool {
	return s.cfg.Username != "" && s.cfg.Password != ""
}

// Login checks the credential pair. Comparison is constant-time on both
// fields so neither username nor password length leaks through timing.
func (s *AuthService) Login(username, password string) error {
	if !s.Configured() {
		metrics.AuthAttempts.WithLabelValues("unconfigured").Inc()
		return apperrors.ErrAuthNotConfigured
	}

	if token.TimingSafeCompare(username, s.cfg.Username) &&
		token.TimingSafeCompare(password, s.cfg.Password) {
		metrics.AuthAttempts.WithLabelValues("login").Inc()
		return nil
	}

	metrics.AuthAttempts.WithLabelValues("rejected").Inc()
	return apperrors.UnauthorizedError("invalid credentials")
}
