package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/gin-gonic/gin"
)

// officerStore is the officer access the handlers need.
type officerStore interface {
	GetOfficers(ctx context.Context) ([]*models.Officer, error)
	GetOfficerByBadge(ctx context.Context, badgeNumber string) (*models.Officer, error)
}

type OfficerHandler struct {
	officerService officerStore
}

func NewOfficerHandler(officerService officerStore) *OfficerHandler {
	return &OfficerHandler{officerService: officerService}
}

func (h *OfficerHandler) GetOfficers(c *gin.Context) {
	officers, err := h.officerService.GetOfficers(c.Request.Context())
	if err != nil {
		log.Printf("[OfficerHandler] failed to list officers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if officers == nil {
		officers = []*models.Officer{}
	}
	c.JSON(http.StatusOK, officers)
}
