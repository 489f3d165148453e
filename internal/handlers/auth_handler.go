package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "lifeseed/internal/errors"
	"lifeseed/internal/services"
)

// AuthHandler handles passcode login.
type AuthHandler struct {
	authService  services.AuthServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{authService: authService, auditService: auditService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Passcode string `json:"passcode" binding:"required,max=128"`
}

// LoginResponse represents the authentication response with token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthStatusResponse tells the front end whether to show the passcode screen.
type AuthStatusResponse struct {
	Enabled bool `json:"enabled"`
}

// Login exchanges the passcode for a session token
// @Summary     Login
// @Description Exchange the configured passcode for a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Passcode"
// @Success     200 {object} LoginResponse "Session token"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid passcode"
// @Failure     404 {object} ErrorResponse "Passcode login not configured"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	token, expiresAt, err := h.authService.Login(req.Passcode)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPasscode) {
			h.auditService.Log("LOGIN_FAILED", "session", "", c.ClientIP(), nil)
		}
		respondWithError(c, err)
		return
	}

	h.auditService.Log("LOGIN", "session", "", c.ClientIP(), nil)

	c.JSON(http.StatusOK, LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Status reports whether passcode login is enabled
// @Summary     Auth status
// @Description Report whether the API requires a passcode session
// @Tags        auth
// @Produce     json
// @Success     200 {object} AuthStatusResponse "Auth status"
// @Router      /auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, AuthStatusResponse{Enabled: h.authService.Enabled()})
}
