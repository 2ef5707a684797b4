package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VineethSendilraj/COPilot/config"
	"github.com/VineethSendilraj/COPilot/services"
)

func livekitRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewLiveKitService(config.Config{
		LiveKitAPIKey:    "devkey",
		LiveKitAPISecret: "secret",
		LiveKitURL:       "ws://localhost:7880",
	})
	r := gin.New()
	r.POST("/api/livekit-connection", NewLiveKitHandler(svc).GetConnectionDetails)
	return r
}

func TestGetConnectionDetailsEndpoint(t *testing.T) {
	r := livekitRouter()

	body := `{"roomName":"precinct-7","participantType":"officer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/livekit-connection", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var details services.ConnectionDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "ws://localhost:7880", details.ServerURL)
	assert.Equal(t, "precinct-7", details.RoomName)
	assert.Equal(t, "officer", details.ParticipantName)
	assert.NotEmpty(t, details.ParticipantToken)
}

func TestGetConnectionDetailsEndpointDefaults(t *testing.T) {
	r := livekitRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/livekit-connection", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var details services.ConnectionDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, services.DefaultRoomName, details.RoomName)
	assert.Equal(t, "dashboard-observer", details.ParticipantName)
}

func TestGetConnectionDetailsEndpointBadBody(t *testing.T) {
	r := livekitRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/livekit-connection", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}
