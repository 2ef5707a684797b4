package models

import (
	"fmt"
	"time"
)

// EscalationType categorizes a field incident. The same enumeration is used
// for the alert_type of alerts raised against an incident.
type EscalationType string

const (
	EscalationOfficerAggression      EscalationType = "officer_aggression"
	EscalationSuspectWeaponDetected  EscalationType = "suspect_weapon_detected"
	EscalationVerbalEscalation       EscalationType = "verbal_escalation"
	EscalationMultipleOfficersNeeded EscalationType = "multiple_officers_needed"
	EscalationSuspectAggression      EscalationType = "suspect_aggression"
	EscalationOfficerInDanger        EscalationType = "officer_in_danger"
	EscalationCrowdControlNeeded     EscalationType = "crowd_control_needed"
	EscalationMedicalEmergency       EscalationType = "medical_emergency"

	// EscalationRoutine is not part of the stored schema; it is a sentinel
	// the insight rules engine accepts to force the routine-response rule.
	EscalationRoutine EscalationType = "routine"
)

// Valid reports whether t is a storable escalation type. The routine
// sentinel is intentionally excluded: it never appears in Firestore.
func (t EscalationType) Valid() bool {
	switch t {
	case EscalationOfficerAggression, EscalationSuspectWeaponDetected,
		EscalationVerbalEscalation, EscalationMultipleOfficersNeeded,
		EscalationSuspectAggression, EscalationOfficerInDanger,
		EscalationCrowdControlNeeded, EscalationMedicalEmergency:
		return true
	}
	return false
}

// RiskLevel is the ordered severity of an incident.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Rank returns the position of r in the low < medium < high < critical
// ordering, or -1 for an unknown value.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	}
	return -1
}

// Incident is a detected field incident. Incidents are created by the
// upstream detection pipeline and are never deleted; the only mutation
// exposed is the one-way resolve transition.
type Incident struct {
	ID             string         `firestore:"id" json:"id"`
	OfficerID      string         `firestore:"officer_id" json:"officer_id"`
	EscalationType EscalationType `firestore:"escalation_type" json:"escalation_type"`
	RiskLevel      RiskLevel      `firestore:"risk_level" json:"risk_level"`
	Description    string         `firestore:"description,omitempty" json:"description,omitempty"`
	Latitude       float64        `firestore:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude      float64        `firestore:"longitude,omitempty" json:"longitude,omitempty"`
	IsResolved     bool           `firestore:"is_resolved" json:"is_resolved"`
	ResolvedAt     *time.Time     `firestore:"resolved_at,omitempty" json:"resolved_at,omitempty"`
	CreatedAt      time.Time      `firestore:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `firestore:"updated_at" json:"updated_at"`

	// Officer is joined at query time, never stored on the incident doc.
	Officer *Officer `firestore:"-" json:"officer,omitempty"`
}

// Validate checks the stored-record invariants: known enum values and
// resolved_at set iff is_resolved, never before created_at.
func (i *Incident) Validate() error {
	if !i.EscalationType.Valid() {
		return fmt.Errorf("unknown escalation_type %q", i.EscalationType)
	}
	if !i.RiskLevel.Valid() {
		return fmt.Errorf("unknown risk_level %q", i.RiskLevel)
	}
	if i.IsResolved {
		if i.ResolvedAt == nil {
			return fmt.Errorf("resolved incident %s missing resolved_at", i.ID)
		}
		if i.ResolvedAt.Before(i.CreatedAt) {
			return fmt.Errorf("incident %s resolved_at precedes created_at", i.ID)
		}
	} else if i.ResolvedAt != nil {
		return fmt.Errorf("unresolved incident %s has resolved_at set", i.ID)
	}
	return nil
}
