package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travony/config"
	"travony/database"
	"travony/database/repository"
	"travony/handlers"
	"travony/middleware"
	"travony/routes"
	"travony/services/extraction"
	"travony/services/truth"
	"travony/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	provRepo := repository.NewMongoProviderRepo()
	obsRepo := repository.NewMongoObservationRepo()
	consentRepo := repository.NewMongoConsentRepo()
	aggRepo := repository.NewMongoAggregateRepo()

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := provRepo.Seed(seedCtx); err != nil {
		logger.Sugar().Warnf("main: provider seed failed: %v", err)
	}
	seedCancel()

	// Screenshot extraction runs server-side only when a Gemini key is
	// configured; otherwise clients submit pre-parsed fields.
	var extractor extraction.ScreenshotExtractor
	if config.AppConfig.GeminiAPIKey != "" {
		extractor = extraction.NewGeminiExtractor(config.AppConfig.GeminiAPIKey)
	}

	rankingsCache := truth.NewRankingsCache(
		utils.GetRankingsCacheClient(),
		time.Duration(config.AppConfig.RankingsCacheTTL)*time.Second,
	)

	engine := &truth.DefaultTruthEngine{
		Providers:    provRepo,
		Observations: obsRepo,
		Consents:     consentRepo,
		Aggregates:   aggRepo,
		Extractor:    extractor,
		Rankings:     rankingsCache,
	}

	consentHandler := handlers.NewConsentHandler(engine)
	truthHandler := handlers.NewTruthHandler(engine)
	providerHandler := handlers.NewProviderHandler(provRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Consent endpoints.
		GrantConsentHandler:   consentHandler.GrantConsentHandler,
		GetConsentHandler:     consentHandler.GetConsentHandler,
		RevokeConsentHandler:  consentHandler.RevokeConsentHandler,
		DeleteUserDataHandler: consentHandler.DeleteUserDataHandler,

		// Truth engine endpoints.
		SubmitObservationHandler: truthHandler.SubmitObservationHandler,
		GetScoreHandler:          truthHandler.GetScoreHandler,
		GetRankingsHandler:       truthHandler.GetRankingsHandler,
		GetRecommendationHandler: truthHandler.GetRecommendationHandler,
		AutoFeedHandler:          truthHandler.AutoFeedHandler,

		// Provider catalog endpoints.
		GetProvidersHandler: providerHandler.GetProvidersHandler,
		GetProviderHandler:  providerHandler.GetProviderHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
