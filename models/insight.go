package models

import "time"

// InsightType distinguishes the kinds of derived insight.
type InsightType string

const (
	InsightAnalysis       InsightType = "analysis"
	InsightRecommendation InsightType = "recommendation"
	InsightAlert          InsightType = "alert"
)

// InsightStatus is client-local workflow state; it resets to pending on
// every regeneration and is never persisted server-side.
type InsightStatus string

const (
	InsightPending    InsightStatus = "pending"
	InsightInProgress InsightStatus = "in_progress"
	InsightCompleted  InsightStatus = "completed"
	InsightDismissed  InsightStatus = "dismissed"
)

// Insight is a derived recommendation, risk analysis, or backup alert
// computed from an incident and its alerts. Insights are recomputed on
// every request; their IDs are deterministic so regeneration is idempotent.
type Insight struct {
	ID          string        `json:"id"`
	Type        InsightType   `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    RiskLevel     `json:"priority"`
	Actions     []string      `json:"actions"`
	Timestamp   time.Time     `json:"timestamp"`
	Status      InsightStatus `json:"status"`
}
