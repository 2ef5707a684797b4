package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/VineethSendilraj/COPilot/handlers"
	"github.com/VineethSendilraj/COPilot/middleware"
	"github.com/VineethSendilraj/COPilot/services"
)

type Handlers struct {
	App       *handlers.App
	Incidents *handlers.IncidentHandler
	Alerts    *handlers.AlertHandler
	Officers  *handlers.OfficerHandler
	Stats     *handlers.StatsHandler
	LiveKit   *handlers.LiveKitHandler
	Analyze   *handlers.AnalyzeHandler
	Webhook   *handlers.DetectionWebhookHandler
	Stream    *handlers.StreamHandler
}

func Register(r *gin.Engine, h Handlers, firebaseService *services.FirebaseService, clientURL string) {
	// Configure CORS
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	if clientURL != "" {
		origins = append(origins, clientURL)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Webhook-Secret"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Root endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "COPilot API",
		})
	})

	// Health check
	r.GET("/health", h.App.Health)

	// Public routes: connection brokering and ad-hoc analysis are called
	// before the dashboard has a session, the webhook authenticates via
	// its shared secret header.
	r.POST("/api/livekit-connection", h.LiveKit.GetConnectionDetails)
	r.POST("/api/analyze-incident", h.Analyze.AnalyzeIncident)
	r.POST("/api/detections", h.Webhook.Ingest)

	// Dashboard stream authenticates via its token query parameter since
	// browsers cannot set headers on WebSocket upgrades.
	r.GET("/ws/dashboard", h.Stream.HandleWebSocket)

	// Protected routes need auth
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(firebaseService))
	{
		protected.GET("/incidents", h.Incidents.GetIncidents)
		protected.GET("/incidents/:id", h.Incidents.GetIncident)
		protected.POST("/incidents/:id/resolve", h.Incidents.ResolveIncident)
		protected.GET("/incidents/:id/insights", h.Incidents.GetInsights)

		protected.GET("/alerts", h.Alerts.GetAlerts)
		protected.GET("/alerts/officer/:badge", h.Alerts.GetOfficerAlerts)
		protected.POST("/alerts/:id/dismiss", h.Alerts.DismissAlert)

		protected.GET("/officers", h.Officers.GetOfficers)

		protected.GET("/dashboard/stats", h.Stats.GetDashboardStats)
		protected.GET("/dashboard/markers", h.Stats.GetMapMarkers)
	}
}
