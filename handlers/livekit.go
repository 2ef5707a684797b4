package handlers

import (
	"log"
	"net/http"

	"github.com/VineethSendilraj/COPilot/services"
	"github.com/gin-gonic/gin"
)

type LiveKitHandler struct {
	livekitService *services.LiveKitService
}

func NewLiveKitHandler(livekitService *services.LiveKitService) *LiveKitHandler {
	return &LiveKitHandler{livekitService: livekitService}
}

type connectionRequest struct {
	RoomName        string                   `json:"roomName"`
	ParticipantType services.ParticipantType `json:"participantType"`
}

// GetConnectionDetails issues a media-room participant token. A malformed
// body is a client error with no credential issued; a signing failure is
// logged in full but surfaced only as a generic message.
func (h *LiveKitHandler) GetConnectionDetails(c *gin.Context) {
	var req connectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	details, err := h.livekitService.GetConnectionDetails(req.RoomName, req.ParticipantType)
	if err != nil {
		log.Printf("[LiveKitHandler] failed to generate connection details: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate connection details"})
		return
	}

	c.JSON(http.StatusOK, details)
}
