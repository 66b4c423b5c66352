package handlers

import (
	"net/http"

	"travony/models"
	truth "travony/services/truth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConsentHandler exposes the consent lifecycle endpoints.
type ConsentHandler struct {
	Engine truth.Engine
}

func NewConsentHandler(engine truth.Engine) *ConsentHandler {
	return &ConsentHandler{Engine: engine}
}

// GrantConsentHandler records an explicit consent grant for the
// authenticated user.
func (h *ConsentHandler) GrantConsentHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var caps models.ConsentCapabilities
	if err := c.ShouldBindJSON(&caps); err != nil {
		logger.Error("Invalid consent grant request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Engine.GrantConsent(c.Request.Context(), userID, caps); err != nil {
		respondEngineError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.ConsentGranted, "capabilities": caps})
}

// GetConsentHandler reports whether the authenticated user has an active
// grant.
func (h *ConsentHandler) GetConsentHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	granted, err := h.Engine.CheckConsent(c.Request.Context(), userID)
	if err != nil {
		respondEngineError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"granted": granted})
}

// RevokeConsentHandler revokes the user's consent. Previously submitted
// observations remain until the user requests deletion.
func (h *ConsentHandler) RevokeConsentHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	if err := h.Engine.RevokeConsent(c.Request.Context(), userID); err != nil {
		respondEngineError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.ConsentRevoked})
}

// DeleteUserDataHandler purges every observation, score and consent row
// belonging to the authenticated user.
func (h *ConsentHandler) DeleteUserDataHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	deleted, err := h.Engine.DeleteUserData(c.Request.Context(), userID)
	if err != nil {
		respondEngineError(c, logger, err)
		return
	}
	logger.Info("User data purged", zap.String("userID", userID), zap.Int64("deletedObservations", deleted))
	c.JSON(http.StatusOK, gin.H{"deletedObservations": deleted})
}
