package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VineethSendilraj/COPilot/models"
	"github.com/VineethSendilraj/COPilot/services"
)

type fakeIncidentStore struct {
	incident   *models.Incident
	getErr     error
	resolveErr error
}

func (f *fakeIncidentStore) GetIncidents(ctx context.Context) ([]*models.Incident, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return []*models.Incident{f.incident}, nil
}

func (f *fakeIncidentStore) GetIncident(ctx context.Context, incidentID string) (*models.Incident, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.incident, nil
}

func (f *fakeIncidentStore) ResolveIncident(ctx context.Context, incidentID string) (*models.Incident, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.incident, nil
}

type fakeAlertStore struct {
	alerts     []*models.Alert
	dismissErr error
}

func (f *fakeAlertStore) GetAlerts(ctx context.Context) ([]*models.Alert, error) {
	return f.alerts, nil
}

func (f *fakeAlertStore) GetActiveAlertsForOfficer(ctx context.Context, officerID string, limit int) ([]*models.Alert, error) {
	return f.alerts, nil
}

func (f *fakeAlertStore) DismissAlert(ctx context.Context, alertID string) (*models.Alert, error) {
	if f.dismissErr != nil {
		return nil, f.dismissErr
	}
	if len(f.alerts) > 0 {
		return f.alerts[0], nil
	}
	return nil, errors.New("no alert")
}

type fakeAnalyzer struct {
	analysis string
	err      error
}

func (f *fakeAnalyzer) AnalyzeIncident(ctx context.Context, incident *models.Incident) (string, error) {
	return f.analysis, f.err
}

func insightsRouter(incidents incidentStore, alerts alertStore, analyzer IncidentAnalyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewIncidentHandler(incidents, alerts, analyzer)
	r := gin.New()
	r.GET("/api/incidents/:id/insights", h.GetInsights)
	r.POST("/api/incidents/:id/resolve", h.ResolveIncident)
	return r
}

func dangerIncident() *models.Incident {
	return &models.Incident{
		ID:             "inc-1",
		OfficerID:      "off-1",
		EscalationType: models.EscalationOfficerInDanger,
		RiskLevel:      models.RiskCritical,
		CreatedAt:      time.Now().Add(-time.Hour),
	}
}

// Enrichment failure must not suppress the deterministic insights; the
// error rides alongside them so the client can offer a retry.
func TestGetInsightsEnrichmentFailure(t *testing.T) {
	r := insightsRouter(
		&fakeIncidentStore{incident: dangerIncident()},
		&fakeAlertStore{},
		&fakeAnalyzer{err: errors.New("model unavailable")},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/incidents/inc-1/insights", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Insights      []models.Insight `json:"insights"`
		Analysis      string           `json:"analysis"`
		AnalysisError string           `json:"analysis_error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Insights)
	assert.Equal(t, "Failed to generate insights. Please try again.", resp.AnalysisError)
	assert.Empty(t, resp.Analysis)
}

func TestGetInsightsEnrichmentSuccess(t *testing.T) {
	r := insightsRouter(
		&fakeIncidentStore{incident: dangerIncident()},
		&fakeAlertStore{},
		&fakeAnalyzer{analysis: "officer in danger, dispatch backup"},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/incidents/inc-1/insights", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Insights      []models.Insight `json:"insights"`
		Analysis      string           `json:"analysis"`
		AnalysisError string           `json:"analysis_error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Insights)
	assert.Equal(t, "officer in danger, dispatch backup", resp.Analysis)
	assert.Empty(t, resp.AnalysisError)
}

func TestGetInsightsWithoutAnalyzer(t *testing.T) {
	r := insightsRouter(&fakeIncidentStore{incident: dangerIncident()}, &fakeAlertStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/incidents/inc-1/insights", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"insights"`)
	assert.NotContains(t, w.Body.String(), "analysis_error")
}

func TestGetInsightsUnknownIncident(t *testing.T) {
	r := insightsRouter(&fakeIncidentStore{getErr: errors.New("not found")}, &fakeAlertStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/incidents/missing/insights", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Resolving an already-resolved incident is a conflict, not an idempotent
// success.
func TestResolveIncidentConflict(t *testing.T) {
	r := insightsRouter(&fakeIncidentStore{resolveErr: services.ErrAlreadyResolved}, &fakeAlertStore{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/incidents/inc-1/resolve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already resolved")
}

func TestResolveIncidentOK(t *testing.T) {
	r := insightsRouter(&fakeIncidentStore{incident: dangerIncident()}, &fakeAlertStore{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/incidents/inc-1/resolve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
