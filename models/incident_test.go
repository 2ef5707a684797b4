package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentValidate(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	resolved := created.Add(time.Hour)

	valid := Incident{
		ID:             "inc-1",
		EscalationType: EscalationSuspectAggression,
		RiskLevel:      RiskHigh,
		CreatedAt:      created,
	}
	require.NoError(t, valid.Validate())

	resolvedOK := valid
	resolvedOK.IsResolved = true
	resolvedOK.ResolvedAt = &resolved
	require.NoError(t, resolvedOK.Validate())

	badType := valid
	badType.EscalationType = "car_chase"
	assert.Error(t, badType.Validate())

	badRisk := valid
	badRisk.RiskLevel = "severe"
	assert.Error(t, badRisk.Validate())

	missingStamp := valid
	missingStamp.IsResolved = true
	assert.Error(t, missingStamp.Validate())

	danglingStamp := valid
	danglingStamp.ResolvedAt = &resolved
	assert.Error(t, danglingStamp.Validate())

	before := created.Add(-time.Minute)
	tooEarly := valid
	tooEarly.IsResolved = true
	tooEarly.ResolvedAt = &before
	assert.Error(t, tooEarly.Validate())
}

func TestEscalationTypeValidExcludesRoutine(t *testing.T) {
	assert.True(t, EscalationOfficerAggression.Valid())
	assert.True(t, EscalationMedicalEmergency.Valid())
	assert.False(t, EscalationRoutine.Valid())
	assert.False(t, EscalationType("").Valid())
}

func TestRiskLevelRank(t *testing.T) {
	assert.Equal(t, 0, RiskLow.Rank())
	assert.Equal(t, 1, RiskMedium.Rank())
	assert.Equal(t, 2, RiskHigh.Rank())
	assert.Equal(t, 3, RiskCritical.Rank())
	assert.Equal(t, -1, RiskLevel("unknown").Rank())
}

func TestAlertValidate(t *testing.T) {
	now := time.Now()

	valid := Alert{ID: "al-1", IncidentID: "inc-1", AlertType: EscalationVerbalEscalation}
	require.NoError(t, valid.Validate())

	orphan := valid
	orphan.IncidentID = ""
	assert.Error(t, orphan.Validate())

	dismissedOK := valid
	dismissedOK.IsDismissed = true
	dismissedOK.DismissedAt = &now
	require.NoError(t, dismissedOK.Validate())

	dismissedNoStamp := valid
	dismissedNoStamp.IsDismissed = true
	assert.Error(t, dismissedNoStamp.Validate())
}

func TestCriticalAlertTypes(t *testing.T) {
	assert.True(t, CriticalAlertTypes[EscalationOfficerAggression])
	assert.True(t, CriticalAlertTypes[EscalationOfficerInDanger])
	assert.True(t, CriticalAlertTypes[EscalationSuspectWeaponDetected])
	assert.False(t, CriticalAlertTypes[EscalationVerbalEscalation])
	assert.False(t, CriticalAlertTypes[EscalationMedicalEmergency])
}
