package models

import "time"

// DetectionEvent is the payload emitted by the upstream detection pipeline,
// consumed from Kafka or posted to the detection webhook. One event becomes
// one incident plus one alert referencing it.
type DetectionEvent struct {
	OfficerID      string         `json:"officer_id" binding:"required"`
	EscalationType EscalationType `json:"escalation_type" binding:"required"`
	RiskLevel      RiskLevel      `json:"risk_level" binding:"required"`
	Description    string         `json:"description"`
	Message        string         `json:"message"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Timestamp      time.Time      `json:"timestamp"`
}
