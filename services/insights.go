package services

import (
	"fmt"
	"time"

	"github.com/VineethSendilraj/COPilot/models"
)

// recommendationRule is one row of the fixed recommendation table. Rules are
// independent and non-exclusive; emission order follows the table order.
type recommendationRule struct {
	matches  func(escalation models.EscalationType, risk models.RiskLevel) bool
	title    string
	text     string
	priority models.RiskLevel
	actions  []string
}

var recommendationRules = []recommendationRule{
	{
		matches: func(e models.EscalationType, r models.RiskLevel) bool {
			return e == models.EscalationOfficerAggression ||
				e == models.EscalationOfficerInDanger ||
				r == models.RiskCritical
		},
		title:    "Immediate Response Required",
		text:     "This incident requires immediate attention and resource allocation.",
		priority: models.RiskCritical,
		actions:  []string{"Dispatch backup", "Alert supervisor", "Prepare tactical team"},
	},
	{
		matches: func(e models.EscalationType, r models.RiskLevel) bool {
			return e == models.EscalationSuspectAggression ||
				e == models.EscalationVerbalEscalation
		},
		title:    "De-escalation Required",
		text:     "Situation requires de-escalation protocols and careful monitoring.",
		priority: models.RiskHigh,
		actions:  []string{"Deploy de-escalation team", "Prepare containment measures", "Monitor closely"},
	},
	{
		matches: func(e models.EscalationType, r models.RiskLevel) bool {
			return e == models.EscalationSuspectWeaponDetected
		},
		title:    "Tactical Response Required",
		text:     "Weapon detected. Tactical response team should be deployed immediately.",
		priority: models.RiskCritical,
		actions:  []string{"Deploy tactical team", "Establish perimeter", "Evacuate civilians"},
	},
	{
		matches: func(e models.EscalationType, r models.RiskLevel) bool {
			return e == models.EscalationMultipleOfficersNeeded ||
				e == models.EscalationCrowdControlNeeded
		},
		title:    "Additional Resources Required",
		text:     "Additional officers and resources needed for proper incident management.",
		priority: models.RiskHigh,
		actions:  []string{"Dispatch additional units", "Coordinate with other agencies", "Prepare crowd control equipment"},
	},
	{
		matches: func(e models.EscalationType, r models.RiskLevel) bool {
			return e == models.EscalationRoutine || r == models.RiskLow
		},
		title:    "Routine Response",
		text:     "Standard response procedures are appropriate.",
		priority: models.RiskLow,
		actions:  []string{"Follow standard protocols", "Document incident", "Monitor progress"},
	},
}

func riskDescription(risk models.RiskLevel) string {
	switch risk {
	case models.RiskLow:
		return "Minimal threat level. Standard procedures sufficient."
	case models.RiskMedium:
		return "Moderate threat level. Enhanced monitoring recommended."
	case models.RiskHigh:
		return "High threat level. Immediate attention required."
	case models.RiskCritical:
		return "Critical threat level. Emergency response needed."
	}
	return "Unknown risk level."
}

func riskActions(risk models.RiskLevel) []string {
	switch risk {
	case models.RiskLow:
		return []string{"Continue standard procedures", "Monitor situation"}
	case models.RiskMedium:
		return []string{"Increase monitoring", "Prepare backup if needed", "Alert supervisor"}
	case models.RiskHigh:
		return []string{"Dispatch backup immediately", "Alert supervisor", "Prepare tactical response"}
	case models.RiskCritical:
		return []string{"Emergency response", "Dispatch all available units", "Alert command center"}
	}
	return []string{"Assess situation", "Follow standard protocols"}
}

// backupRequired reports whether the incident warrants the backup alert
// insight. The condition overlaps the first recommendation rule on purpose;
// both insights may appear together.
func backupRequired(incident *models.Incident) bool {
	return incident.RiskLevel == models.RiskHigh ||
		incident.RiskLevel == models.RiskCritical ||
		incident.EscalationType == models.EscalationOfficerAggression ||
		incident.EscalationType == models.EscalationOfficerInDanger
}

// GenerateInsights derives the ordered insight list for an incident and its
// related alerts. The function is pure: same incident and timestamp yield
// the same insights, and every insight ID is deterministic so the client can
// diff or replace safely on regeneration. The related alerts do not change
// which rules fire today but are part of the contract for future rules.
func GenerateInsights(incident *models.Incident, alerts []*models.Alert, now time.Time) []models.Insight {
	insights := []models.Insight{{
		ID:    fmt.Sprintf("risk_%s", incident.ID),
		Type:  models.InsightAnalysis,
		Title: "Risk Assessment",
		Description: fmt.Sprintf("Current risk level: %s. %s",
			incident.RiskLevel, riskDescription(incident.RiskLevel)),
		Priority:  incident.RiskLevel,
		Actions:   riskActions(incident.RiskLevel),
		Timestamp: now,
		Status:    models.InsightPending,
	}}

	for i, rule := range recommendationRules {
		if !rule.matches(incident.EscalationType, incident.RiskLevel) {
			continue
		}
		insights = append(insights, models.Insight{
			ID:          fmt.Sprintf("rec_%s_%d", incident.ID, i),
			Type:        models.InsightRecommendation,
			Title:       rule.title,
			Description: rule.text,
			Priority:    rule.priority,
			Actions:     rule.actions,
			Timestamp:   now,
			Status:      models.InsightPending,
		})
	}

	if backupRequired(incident) {
		insights = append(insights, models.Insight{
			ID:          fmt.Sprintf("backup_%s", incident.ID),
			Type:        models.InsightAlert,
			Title:       "Backup Required",
			Description: "High-risk incident detected. Immediate backup recommended.",
			Priority:    models.RiskCritical,
			Actions:     []string{"Dispatch backup unit", "Alert supervisor", "Prepare tactical response"},
			Timestamp:   now,
			Status:      models.InsightPending,
		})
	}

	return insights
}
