package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/VineethSendilraj/COPilot/config"
	"github.com/VineethSendilraj/COPilot/handlers"
	"github.com/VineethSendilraj/COPilot/router"
	"github.com/VineethSendilraj/COPilot/services"
)

func main() {
	godotenv.Load()

	cfg := config.Load()

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Println("defaulting:8080")
	}

	firebaseService, err := services.NewFirebaseService(cfg.FirebaseCredentialsPath)
	if err != nil {
		panic(err)
	}
	defer firebaseService.Close()

	ctx := context.Background()

	settingsService := services.NewSettingsService(firebaseService, cfg.KMSCryptoKey)
	cfg = settingsService.ResolveMediaSecret(ctx, cfg)

	officerService := services.NewOfficerService(firebaseService)
	incidentService := services.NewIncidentService(firebaseService, officerService)
	alertService := services.NewAlertService(firebaseService, officerService)
	livekitService := services.NewLiveKitService(cfg)

	// keep the interface nil when no analyzer is running, a typed nil
	// pointer would pass the handler's nil check
	var analyzer handlers.IncidentAnalyzer
	if cfg.GeminiAPIKey != "" {
		analyzerService, err := services.NewAnalyzerService(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("failed to start analyzer, incident analysis disabled: %v", err)
		} else {
			analyzer = analyzerService
		}
	} else {
		log.Println("GEMINI_API_KEY not set, incident analysis disabled")
	}

	// start detection consumer (if CLIENT_PROPERTIES_PATH is set)
	if cfg.KafkaPropertiesPath != "" {
		if err := services.StartDetectionConsumer(cfg.KafkaPropertiesPath, incidentService, alertService); err != nil {
			log.Printf("failed to start detection consumer: %v", err)
		}
	}

	syncEngine := services.NewSyncEngine(firebaseService, incidentService, alertService, officerService)

	streamHandler := handlers.NewStreamHandler(firebaseService, []string{
		"http://localhost:5173",
		"http://localhost:3000",
		cfg.ClientURL,
	})
	syncEngine.SetBroadcaster(streamHandler.Broadcast)

	if err := syncEngine.Start(ctx); err != nil {
		panic(err)
	}
	defer syncEngine.Stop()

	h := router.Handlers{
		App:       handlers.NewApp(cfg),
		Incidents: handlers.NewIncidentHandler(incidentService, alertService, analyzer),
		Alerts:    handlers.NewAlertHandler(alertService, officerService),
		Officers:  handlers.NewOfficerHandler(officerService),
		Stats:     handlers.NewStatsHandler(syncEngine),
		LiveKit:   handlers.NewLiveKitHandler(livekitService),
		Analyze:   handlers.NewAnalyzeHandler(analyzer),
		Webhook:   handlers.NewDetectionWebhookHandler(incidentService, alertService, settingsService),
		Stream:    streamHandler,
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	router.Register(r, h, firebaseService, cfg.ClientURL)

	log.Printf("Starting server on port %s", cfg.Port)
	r.Run(":" + cfg.Port)
}
