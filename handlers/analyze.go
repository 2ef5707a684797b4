package handlers

import (
	"log"
	"net/http"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/gin-gonic/gin"
)

type AnalyzeHandler struct {
	analyzerService IncidentAnalyzer
}

// NewAnalyzeHandler wires the ad-hoc analysis endpoint. analyzer may be
// nil; analysis requests then fail with a generic error.
func NewAnalyzeHandler(analyzer IncidentAnalyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzerService: analyzer}
}

type analyzeRequest struct {
	Incident *models.Incident `json:"incident"`
}

type analyzeResponse struct {
	Success         bool   `json:"success"`
	Analysis        string `json:"analysis"`
	Recommendations string `json:"recommendations"`
}

// AnalyzeIncident runs the language-model analysis for one incident.
func (h *AnalyzeHandler) AnalyzeIncident(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Incident == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incident data is required"})
		return
	}

	if h.analyzerService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze incident"})
		return
	}

	analysis, err := h.analyzerService.AnalyzeIncident(c.Request.Context(), req.Incident)
	if err != nil {
		log.Printf("[AnalyzeHandler] analysis failed for incident %s: %v", req.Incident.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze incident"})
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{
		Success:         true,
		Analysis:        analysis,
		Recommendations: analysis,
	})
}
