package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voicecart/voicecart-server/internal/credential"
	"github.com/voicecart/voicecart-server/internal/errors"
	"github.com/voicecart/voicecart-server/internal/middleware"
)

// AuthController stores and clears the backend-issued bearer token for a
// session. Token issuance itself belongs to the backend; this controller
// only manages the two credential locations.
type AuthController struct {
	credentials *credential.Resolver
}

func NewAuthController(credentials *credential.Resolver) *AuthController {
	return &AuthController{
		credentials: credentials,
	}
}

type StoreTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Remember bool   `json:"remember"`
}

// StoreToken saves a backend-issued token, persistently when remember is
// set, session-only otherwise
// POST /api/v1/auth/token
func (ctrl *AuthController) StoreToken(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, _ := middleware.GetSessionID(c)

	var req StoreTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid token store request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.credentials.Store(c.Request.Context(), sessionID, req.Token, req.Remember); err != nil {
		log.Error("Failed to store credential", err, map[string]interface{}{
			"session_id": sessionID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
	})
}

// ClearToken removes the token from both credential locations
// DELETE /api/v1/auth/token
func (ctrl *AuthController) ClearToken(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, _ := middleware.GetSessionID(c)

	if err := ctrl.credentials.Clear(c.Request.Context(), sessionID); err != nil {
		log.Error("Failed to clear credential", err, map[string]interface{}{
			"session_id": sessionID,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": false,
	})
}

// Status reports whether a credential resolves for this session
// GET /api/v1/auth/status
func (ctrl *AuthController) Status(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	token := ctrl.credentials.Token(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"authenticated": token != "",
	})
}
