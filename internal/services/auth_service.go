package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/logger"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue() (token string, expiresAt time.Time, err error)
}

// authService exchanges the configured passcode for a session token.
type authService struct {
	passcodeHash []byte
	issuer       TokenIssuer
}

// NewAuthService creates a new AuthServicer. An empty hash disables login.
func NewAuthService(passcodeHash string, issuer TokenIssuer) AuthServicer {
	return &authService{passcodeHash: []byte(passcodeHash), issuer: issuer}
}

// Enabled reports whether a passcode is configured.
func (s *authService) Enabled() bool {
	return len(s.passcodeHash) > 0
}

// Login checks passcode against the bcrypt hash and issues a token.
func (s *authService) Login(passcode string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, apperrors.ErrAuthDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.passcodeHash, []byte(passcode)); err != nil {
		return "", time.Time{}, apperrors.ErrInvalidPasscode
	}

	token, expiresAt, err := s.issuer.Issue()
	if err != nil {
		logger.Get().Errorw("failed to issue session token", "error", err)
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, expiresAt, nil
}

// HashPasscode returns the bcrypt hash stored in AUTH_PASSCODE_HASH.
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
