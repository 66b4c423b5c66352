package handlers

import (
	"errors"
	"net/http"

	"travony/database/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ProviderHandler exposes the read-only provider catalog.
type ProviderHandler struct {
	Repo repository.ProviderRepository
}

func NewProviderHandler(repo repository.ProviderRepository) *ProviderHandler {
	return &ProviderHandler{Repo: repo}
}

// GetProvidersHandler returns every tracked ride-hailing provider.
func (h *ProviderHandler) GetProvidersHandler(c *gin.Context) {
	logger := getLogger(c)

	providers, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		logger.Error("Failed to retrieve providers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get providers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// GetProviderHandler returns one provider by ID.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	provider, err := h.Repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}
	if err != nil {
		logger.Error("Failed to look up provider", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get provider"})
		return
	}
	c.JSON(http.StatusOK, provider)
}
