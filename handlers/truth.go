package handlers

import (
	"net/http"

	"travony/models"
	truth "travony/services/truth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TruthHandler exposes the observation and ranking endpoints of the
// truth engine.
type TruthHandler struct {
	Engine truth.Engine
}

func NewTruthHandler(engine truth.Engine) *TruthHandler {
	return &TruthHandler{Engine: engine}
}

// submitObservationRequest is the transport shape of one self-reported
// ride submission.
type submitObservationRequest struct {
	ProviderName string            `json:"providerName" binding:"required"`
	City         string            `json:"city" binding:"required"`
	Signals      models.RawSignals `json:"signals"`
}

// SubmitObservationHandler runs a self-reported ride through the full
// pipeline and returns its score.
func (h *TruthHandler) SubmitObservationHandler(c *gin.Context) {
	logger := getLogger(c)
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req submitObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid observation submission", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Engine.SubmitObservation(c.Request.Context(), userID, req.ProviderName, req.City, req.Signals)
	if err != nil {
		respondEngineError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetScoreHandler returns the stored score of an observation.
func (h *TruthHandler) GetScoreHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	score, err := h.Engine.GetScore(c.Request.Context(), id)
	if err != nil {
		respondEngineError(c, logger, err)
		return
	}
	if score == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Score not found"})
		return
	}
	c.JSON(http.StatusOK, score)
}

// GetRankingsHandler returns the contextual provider ranking for a city,
// optionally narrowed by timeBlock and routeType query params.
func (h *TruthHandler) GetRankingsHandler(c *gin.Context) {
	logger := getLogger(c)
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query param 'city' is required"})
		return
	}

	result, err := h.Engine.GetRankings(c.Request.Context(), city, c.Query("timeBlock"), c.Query("routeType"))
	if err != nil {
		respondEngineError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetRecommendationHandler returns the single best provider for a
// context. A 200 with a null recommendation is the normal "not enough
// data" answer, not an error.
func (h *TruthHandler) GetRecommendationHandler(c *gin.Context) {
	logger := getLogger(c)
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query param 'city' is required"})
		return
	}

	rec, err := h.Engine.GetRecommendation(c.Request.Context(), city, c.Query("timeBlock"), c.Query("routeType"))
	if err != nil {
		respondEngineError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec})
}

// AutoFeedHandler ingests one completed platform ride as a full-trust
// observation. Admin-gated; never exposed to end users.
func (h *TruthHandler) AutoFeedHandler(c *gin.Context) {
	logger := getLogger(c)

	var ride models.PlatformRide
	if err := c.ShouldBindJSON(&ride); err != nil {
		logger.Error("Invalid auto-feed payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Engine.AutoFeed(c.Request.Context(), ride)
	if err != nil {
		respondEngineError(c, logger, err)
		return
	}
	logger.Info("Platform ride ingested",
		zap.String("rideID", ride.RideID),
		zap.String("observationID", result.ObservationID))
	c.JSON(http.StatusCreated, result)
}
