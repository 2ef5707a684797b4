package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/VineethSendilraj/COPilot/services"
	"github.com/gin-gonic/gin"
)

// officerFeedLimit caps the mobile alert feed at the newest entries.
const officerFeedLimit = 5

// alertStore is the alert access the handlers need.
type alertStore interface {
	GetAlerts(ctx context.Context) ([]*models.Alert, error)
	GetActiveAlertsForOfficer(ctx context.Context, officerID string, limit int) ([]*models.Alert, error)
	DismissAlert(ctx context.Context, alertID string) (*models.Alert, error)
}

type AlertHandler struct {
	alertService   alertStore
	officerService officerStore
}

func NewAlertHandler(alertService alertStore, officerService officerStore) *AlertHandler {
	return &AlertHandler{
		alertService:   alertService,
		officerService: officerService,
	}
}

func (h *AlertHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.alertService.GetAlerts(c.Request.Context())
	if err != nil {
		log.Printf("[AlertHandler] failed to list alerts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}
	c.JSON(http.StatusOK, alerts)
}

// GetOfficerAlerts serves the mobile feed: the officer's newest undismissed
// alerts with incidents joined.
func (h *AlertHandler) GetOfficerAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	officer, err := h.officerService.GetOfficerByBadge(ctx, c.Param("badge"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	alerts, err := h.alertService.GetActiveAlertsForOfficer(ctx, officer.ID, officerFeedLimit)
	if err != nil {
		log.Printf("[AlertHandler] failed to list alerts for officer %s: %v", officer.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}

	c.JSON(http.StatusOK, gin.H{
		"officer": officer,
		"alerts":  alerts,
		"markers": services.MapMarkers(alerts),
	})
}

func (h *AlertHandler) DismissAlert(c *gin.Context) {
	alert, err := h.alertService.DismissAlert(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrAlreadyDismissed) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[AlertHandler] failed to dismiss alert %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alert)
}
