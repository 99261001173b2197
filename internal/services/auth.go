package services

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"websutech/internal/config"
	"websutech/internal/metrics"
	"websutech/internal/util"
	apperrors "websutech/pkg/errors"
)

// AuthService authenticates the single admin principal configured via
// environment and issues the tokens that guard the admin listing.
type AuthService struct {
	cfg *config.AuthConfig
	log *zap.SugaredLogger
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.AuthConfig, log *zap.SugaredLogger) *AuthService {
	return &AuthService{cfg: cfg, log: log}
}

// LoginResult is the successful login outcome.
type LoginResult struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// Login verifies the admin credentials and returns a signed token.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	s.log.Infow("[AUTH] login attempt", "username", username)

	if s.cfg.AdminPasswordHash == "" || s.cfg.SecretKey == "" {
		s.log.Warnw("[AUTH] login rejected: admin login not configured")
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "admin login is not configured")
	}

	if username != s.cfg.AdminUsername || !util.CheckPasswordHash(password, s.cfg.AdminPasswordHash) {
		s.log.Infow("[AUTH] login failed: invalid credentials", "username", username)
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "incorrect username or password")
	}

	expiry := time.Duration(s.cfg.TokenExpiryMinutes) * time.Minute
	token, err := util.GenerateToken(s.cfg.SecretKey, username, expiry)
	if err != nil {
		s.log.Errorw("[AUTH] token generation failed", "error", err)
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to generate token", err)
	}

	s.log.Infow("[AUTH] login successful", "username", username)
	metrics.RecordAuthAttempt(true)

	return &LoginResult{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int(expiry.Seconds()),
	}, nil
}

// Validate checks a bearer token and returns its claims.
func (s *AuthService) Validate(token string) (*util.Claims, error) {
	claims, err := util.ValidateToken(s.cfg.SecretKey, token)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnauthorized, "invalid or expired token", err)
	}
	return claims, nil
}
