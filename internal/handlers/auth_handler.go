package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/academy-labs/academy-api/internal/middleware"
	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/internal/services"
	apperrors "github.com/academy-labs/academy-api/pkg/errors"
)

// AuthHandler serves the cookie-session admin login flow used by the admin
// panel. The Basic-auth path lives in the admin middleware; this handler
// covers explicit login/check/logout.
type AuthHandler struct {
	service services.AuthServiceInterface
}

func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login validates credentials and marks the session as admin. The
// not-configured check runs before credential validation so a missing server
// identity is always a 500, never a misleading 401.
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.service.Configured() {
		respondError(c, http.StatusInternalServerError, "Admin credentials not configured", nil)
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	if err := h.service.Login(req.Username, req.Password); err != nil {
		if apperrors.Is(err, apperrors.ErrAuthNotConfigured) {
			respondError(c, http.StatusInternalServerError, "Admin credentials not configured", nil)
			return
		}
		respondError(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	if sess, ok := middleware.GetSession(c); ok {
		sess.SetAdminAuthenticated(true)
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Success: true,
		Message: "Login successful",
	})
}

// Check reports whether the current session is authenticated.
func (h *AuthHandler) Check(c *gin.Context) {
	if !h.service.Configured() {
		respondError(c, http.StatusInternalServerError, "Admin credentials not configured", nil)
		return
	}

	if sess, ok := middleware.GetSession(c); ok && sess.IsAdminAuthenticated() {
		c.JSON(http.StatusOK, models.StatusResponse{
			Success: true,
			Message: "Authenticated",
		})
		return
	}

	respondError(c, http.StatusUnauthorized, "Not authenticated", nil)
}

// Logout clears the admin flag. The session entry itself stays in the store
// until TTL expiry; only the privilege is dropped.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := middleware.GetSession(c); ok {
		sess.SetAdminAuthenticated(false)
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		Success: true,
		Message: "Logout successful",
	})
}
