package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	// Consent endpoints.
	GrantConsentHandler   gin.HandlerFunc
	GetConsentHandler     gin.HandlerFunc
	RevokeConsentHandler  gin.HandlerFunc
	DeleteUserDataHandler gin.HandlerFunc

	// Truth engine endpoints.
	SubmitObservationHandler gin.HandlerFunc
	GetScoreHandler          gin.HandlerFunc
	GetRankingsHandler       gin.HandlerFunc
	GetRecommendationHandler gin.HandlerFunc
	AutoFeedHandler          gin.HandlerFunc

	// Provider catalog endpoints.
	GetProvidersHandler gin.HandlerFunc
	GetProviderHandler  gin.HandlerFunc
}
