package handlers

import (
	"net/http"
	"time"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/VineethSendilraj/COPilot/services"
	"github.com/gin-gonic/gin"
)

// StatsHandler serves the dashboard summary counters and map markers from
// the sync engine's cache; it never queries Firestore directly.
type StatsHandler struct {
	sync *services.SyncEngine
}

func NewStatsHandler(sync *services.SyncEngine) *StatsHandler {
	return &StatsHandler{sync: sync}
}

func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	incidents, alerts, _ := h.sync.Snapshot()
	c.JSON(http.StatusOK, services.ComputeStats(incidents, alerts, time.Now()))
}

// GetMapMarkers projects the active alerts onto map markers, with incidents
// and officers joined from the cache.
func (h *StatsHandler) GetMapMarkers(c *gin.Context) {
	incidents, alerts, officers := h.sync.Snapshot()

	incidentsByID := make(map[string]*models.Incident, len(incidents))
	for _, incident := range incidents {
		incidentsByID[incident.ID] = incident
	}
	officersByID := make(map[string]*models.Officer, len(officers))
	for _, officer := range officers {
		officersByID[officer.ID] = officer
	}

	var active []*models.Alert
	for _, alert := range alerts {
		if alert.IsDismissed {
			continue
		}
		joined := *alert
		if incident, ok := incidentsByID[alert.IncidentID]; ok {
			withOfficer := *incident
			if withOfficer.Officer == nil {
				withOfficer.Officer = officersByID[incident.OfficerID]
			}
			joined.Incident = &withOfficer
		}
		active = append(active, &joined)
	}

	c.JSON(http.StatusOK, services.MapMarkers(active))
}
