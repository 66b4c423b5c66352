package routes

import (
	"net/http"
	"time"

	"travony/handlers"
	"travony/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterConsentRoutes registers the consent lifecycle endpoints. All of
// them act on the authenticated user only.
func RegisterConsentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/consent")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.GrantConsentHandler)
		api.GET("", hb.GetConsentHandler)
		api.DELETE("", hb.RevokeConsentHandler)
		api.DELETE("/data", hb.DeleteUserDataHandler)
	}
}

// RegisterTruthRoutes registers observation submission and the contextual
// ranking reads. The auto-feed endpoint is admin-only.
func RegisterTruthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/truth")
	{
		// Read endpoints are public; rankings carry no user data.
		api.GET("/rankings", hb.GetRankingsHandler)
		api.GET("/recommendation", hb.GetRecommendationHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware())
		protected.POST("/observations", hb.SubmitObservationHandler)
		protected.GET("/observations/:id/score", hb.GetScoreHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("/autofeed", hb.AutoFeedHandler)
	}
}

// RegisterProviderRoutes registers the read-only provider catalog.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("", hb.GetProvidersHandler)
		api.GET("/:id", hb.GetProviderHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Travony"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterConsentRoutes(r, hb)
	RegisterTruthRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterHealthRoute(r)
}
