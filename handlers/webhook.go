package handlers

import (
	"log"
	"net/http"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/VineethSendilraj/COPilot/services"
	"github.com/gin-gonic/gin"
)

// DetectionWebhookHandler is the HTTP ingest path for detection events,
// used by pipelines that cannot reach Kafka. Requests carry the shared
// secret in X-Webhook-Secret, checked against the stored bcrypt hash.
type DetectionWebhookHandler struct {
	incidentService *services.IncidentService
	alertService    *services.AlertService
	settingsService *services.SettingsService
}

func NewDetectionWebhookHandler(incidentService *services.IncidentService, alertService *services.AlertService, settingsService *services.SettingsService) *DetectionWebhookHandler {
	return &DetectionWebhookHandler{
		incidentService: incidentService,
		alertService:    alertService,
		settingsService: settingsService,
	}
}

func (h *DetectionWebhookHandler) Ingest(c *gin.Context) {
	secret := c.GetHeader("X-Webhook-Secret")
	if secret == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing webhook secret"})
		return
	}

	hash, err := h.settingsService.GetWebhookSecretHash(c.Request.Context())
	if err != nil {
		log.Printf("[webhook] secret hash unavailable: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "webhook not configured"})
		return
	}
	if !services.CheckSecretHash(secret, hash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
		return
	}

	var ev models.DetectionEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	incident, err := h.incidentService.CreateIncident(ctx, &ev)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := h.alertService.CreateAlert(ctx, &ev, incident.ID)
	if err != nil {
		log.Printf("[webhook] failed to create alert for incident %s: %v", incident.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("[webhook] ingested %s incident %s for officer %s", ev.EscalationType, incident.ID, ev.OfficerID)
	c.JSON(http.StatusCreated, gin.H{"incident": incident, "alert": alert})
}
