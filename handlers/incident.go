package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/VineethSendilraj/COPilot/services"
	"github.com/gin-gonic/gin"
)

const enrichmentTimeout = 20 * time.Second

// incidentStore is the incident access the handlers need.
type incidentStore interface {
	GetIncidents(ctx context.Context) ([]*models.Incident, error)
	GetIncident(ctx context.Context, incidentID string) (*models.Incident, error)
	ResolveIncident(ctx context.Context, incidentID string) (*models.Incident, error)
}

// IncidentAnalyzer produces the model-generated narrative for one incident.
// services.AnalyzerService implements it.
type IncidentAnalyzer interface {
	AnalyzeIncident(ctx context.Context, incident *models.Incident) (string, error)
}

type IncidentHandler struct {
	incidentService incidentStore
	alertService    alertStore
	analyzerService IncidentAnalyzer
}

// NewIncidentHandler wires the incident endpoints. analyzer may be nil;
// insights are then served without enrichment.
func NewIncidentHandler(incidentService incidentStore, alertService alertStore, analyzer IncidentAnalyzer) *IncidentHandler {
	return &IncidentHandler{
		incidentService: incidentService,
		alertService:    alertService,
		analyzerService: analyzer,
	}
}

func (h *IncidentHandler) GetIncidents(c *gin.Context) {
	incidents, err := h.incidentService.GetIncidents(c.Request.Context())
	if err != nil {
		log.Printf("[IncidentHandler] failed to list incidents: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if incidents == nil {
		incidents = []*models.Incident{}
	}
	c.JSON(http.StatusOK, incidents)
}

func (h *IncidentHandler) GetIncident(c *gin.Context) {
	incident, err := h.incidentService.GetIncident(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, incident)
}

// ResolveIncident performs the one-way resolve transition. Resolving twice
// is a conflict, not an idempotent success, so the dashboard notices races
// between supervisors.
func (h *IncidentHandler) ResolveIncident(c *gin.Context) {
	incident, err := h.incidentService.ResolveIncident(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrAlreadyResolved) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[IncidentHandler] failed to resolve incident %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, incident)
}

// GetInsights returns the deterministic insight list for an incident,
// enriched with a model-generated narrative when the analyzer is available.
// Enrichment failure never suppresses the deterministic insights; it is
// reported alongside them so the client can offer a retry.
func (h *IncidentHandler) GetInsights(c *gin.Context) {
	ctx := c.Request.Context()

	incident, err := h.incidentService.GetIncident(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	alerts, err := h.alertService.GetAlerts(ctx)
	if err != nil {
		log.Printf("[IncidentHandler] failed to load alerts for insights: %v", err)
		alerts = nil
	}
	var related []*models.Alert
	for _, alert := range alerts {
		if alert.IncidentID == incident.ID {
			related = append(related, alert)
		}
	}

	insights := services.GenerateInsights(incident, related, time.Now())

	resp := gin.H{"insights": insights}
	if h.analyzerService != nil {
		enrichCtx, cancel := context.WithTimeout(ctx, enrichmentTimeout)
		defer cancel()

		analysis, err := h.analyzerService.AnalyzeIncident(enrichCtx, incident)
		if err != nil {
			log.Printf("[IncidentHandler] enrichment failed for incident %s: %v", incident.ID, err)
			resp["analysis_error"] = "Failed to generate insights. Please try again."
		} else {
			resp["analysis"] = analysis
		}
	}

	c.JSON(http.StatusOK, resp)
}
