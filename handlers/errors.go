package handlers

import (
	"errors"
	"net/http"

	"travony/services/truth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondEngineError maps engine error types onto HTTP statuses. Anything
// the engine does not classify is a 500.
func respondEngineError(c *gin.Context, logger *zap.Logger, err error) {
	var ve truth.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
		return
	}
	var ce truth.ConsentRequiredError
	if errors.As(err, &ce) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Consent required before submitting ride data"})
		return
	}
	var de truth.DuplicateSubmissionError
	if errors.As(err, &de) {
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate submission: an observation for this provider was already recorded recently"})
		return
	}
	logger.Error("Engine operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// authedUserID pulls the user ID set by the auth middleware, writing the
// 401 itself when missing.
func authedUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}
