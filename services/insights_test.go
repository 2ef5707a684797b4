package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VineethSendilraj/COPilot/models"
)

func testIncident(escalation models.EscalationType, risk models.RiskLevel) *models.Incident {
	return &models.Incident{
		ID:             "inc-1",
		OfficerID:      "off-1",
		EscalationType: escalation,
		RiskLevel:      risk,
		CreatedAt:      time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
	}
}

func titlesOf(insights []models.Insight) []string {
	titles := make([]string, 0, len(insights))
	for _, in := range insights {
		titles = append(titles, in.Title)
	}
	return titles
}

func TestGenerateInsightsCriticalOfficerInDanger(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	incident := testIncident(models.EscalationOfficerInDanger, models.RiskCritical)

	insights := GenerateInsights(incident, nil, now)

	require.Len(t, insights, 3)

	// risk assessment always comes first
	assert.Equal(t, "risk_inc-1", insights[0].ID)
	assert.Equal(t, models.InsightAnalysis, insights[0].Type)
	assert.Equal(t, "Risk Assessment", insights[0].Title)
	assert.Contains(t, insights[0].Description, "Current risk level: critical")
	assert.Contains(t, insights[0].Description, "Emergency response needed.")
	assert.Equal(t, models.RiskCritical, insights[0].Priority)

	assert.Equal(t, "rec_inc-1_0", insights[1].ID)
	assert.Equal(t, models.InsightRecommendation, insights[1].Type)
	assert.Equal(t, "Immediate Response Required", insights[1].Title)
	assert.Equal(t, []string{"Dispatch backup", "Alert supervisor", "Prepare tactical team"}, insights[1].Actions)

	assert.Equal(t, "backup_inc-1", insights[2].ID)
	assert.Equal(t, models.InsightAlert, insights[2].Type)
	assert.Equal(t, "Backup Required", insights[2].Title)
	assert.Equal(t, models.RiskCritical, insights[2].Priority)

	for _, in := range insights {
		assert.Equal(t, models.InsightPending, in.Status)
		assert.Equal(t, now, in.Timestamp)
	}
}

func TestGenerateInsightsWeaponDetected(t *testing.T) {
	now := time.Now()
	incident := testIncident(models.EscalationSuspectWeaponDetected, models.RiskHigh)

	insights := GenerateInsights(incident, nil, now)

	titles := titlesOf(insights)
	assert.Contains(t, titles, "Tactical Response Required")
	assert.Contains(t, titles, "Backup Required")
	assert.NotContains(t, titles, "Immediate Response Required")

	for _, in := range insights {
		if in.Title == "Tactical Response Required" {
			assert.Equal(t, "rec_inc-1_2", in.ID)
			assert.Equal(t, models.RiskCritical, in.Priority)
			assert.Equal(t, []string{"Deploy tactical team", "Establish perimeter", "Evacuate civilians"}, in.Actions)
		}
	}
}

func TestGenerateInsightsVerbalEscalationMedium(t *testing.T) {
	now := time.Now()
	incident := testIncident(models.EscalationVerbalEscalation, models.RiskMedium)

	insights := GenerateInsights(incident, nil, now)

	require.Len(t, insights, 2)
	assert.Equal(t, "Risk Assessment", insights[0].Title)
	assert.Contains(t, insights[0].Description, "Moderate threat level.")
	assert.Equal(t, "De-escalation Required", insights[1].Title)
	assert.Equal(t, models.RiskHigh, insights[1].Priority)
}

func TestGenerateInsightsLowRiskRoutine(t *testing.T) {
	now := time.Now()
	incident := testIncident(models.EscalationMedicalEmergency, models.RiskLow)

	insights := GenerateInsights(incident, nil, now)

	require.Len(t, insights, 2)
	assert.Equal(t, "Routine Response", insights[1].Title)
	assert.Equal(t, "rec_inc-1_4", insights[1].ID)
	assert.Equal(t, models.RiskLow, insights[1].Priority)

	assert.NotContains(t, titlesOf(insights), "Backup Required")
}

func TestGenerateInsightsRoutineSentinel(t *testing.T) {
	incident := testIncident(models.EscalationRoutine, models.RiskMedium)

	insights := GenerateInsights(incident, nil, time.Now())

	assert.Contains(t, titlesOf(insights), "Routine Response")
}

func TestGenerateInsightsDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	incident := testIncident(models.EscalationOfficerAggression, models.RiskHigh)
	alerts := []*models.Alert{{ID: "al-1", IncidentID: "inc-1", AlertType: models.EscalationOfficerAggression}}

	first := GenerateInsights(incident, alerts, now)
	second := GenerateInsights(incident, alerts, now)

	assert.Equal(t, first, second)
}

func TestGenerateInsightsHighRiskGetsBackup(t *testing.T) {
	incident := testIncident(models.EscalationCrowdControlNeeded, models.RiskHigh)

	insights := GenerateInsights(incident, nil, time.Now())

	titles := titlesOf(insights)
	assert.Contains(t, titles, "Additional Resources Required")
	assert.Contains(t, titles, "Backup Required")
}
