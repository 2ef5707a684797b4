package models

import (
	"fmt"
	"time"
)

// Alert is a notification raised against exactly one incident. Alerts are
// created by the upstream detection pipeline and are never deleted; the only
// mutation exposed is the one-way dismiss transition.
type Alert struct {
	ID          string         `firestore:"id" json:"id"`
	OfficerID   string         `firestore:"officer_id" json:"officer_id"`
	IncidentID  string         `firestore:"incident_id" json:"incident_id"`
	AlertType   EscalationType `firestore:"alert_type" json:"alert_type"`
	Message     string         `firestore:"message" json:"message"`
	IsDismissed bool           `firestore:"is_dismissed" json:"is_dismissed"`
	DismissedAt *time.Time     `firestore:"dismissed_at,omitempty" json:"dismissed_at,omitempty"`
	CreatedAt   time.Time      `firestore:"created_at" json:"created_at"`

	// Incident is joined at query time, never stored on the alert doc.
	Incident *Incident `firestore:"-" json:"incident,omitempty"`
}

// CriticalAlertTypes is the canonical set of alert types counted as critical
// by the dashboard stats. This is the single place the membership is defined.
var CriticalAlertTypes = map[EscalationType]bool{
	EscalationOfficerAggression:     true,
	EscalationOfficerInDanger:       true,
	EscalationSuspectWeaponDetected: true,
}

func (a *Alert) Validate() error {
	if a.IncidentID == "" {
		return fmt.Errorf("alert %s has no incident_id", a.ID)
	}
	if !a.AlertType.Valid() {
		return fmt.Errorf("unknown alert_type %q", a.AlertType)
	}
	if a.IsDismissed && a.DismissedAt == nil {
		return fmt.Errorf("dismissed alert %s missing dismissed_at", a.ID)
	}
	if !a.IsDismissed && a.DismissedAt != nil {
		return fmt.Errorf("active alert %s has dismissed_at set", a.ID)
	}
	return nil
}
