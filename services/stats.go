package services

import (
	"time"

	"github.com/VineethSendilraj/COPilot/models"
)

// Fallback map position used when an incident carries no location.
const (
	defaultLatitude  = 40.7128
	defaultLongitude = -74.006
)

// ComputeStats reduces the current incident and alert collections to the
// dashboard summary counters. Pure and order-independent; recomputed in
// full on every refresh. resolved_today compares the local calendar date of
// resolved_at against asOf. The critical-alert membership is defined once,
// at models.CriticalAlertTypes.
func ComputeStats(incidents []*models.Incident, alerts []*models.Alert, asOf time.Time) models.DashboardStats {
	stats := models.DashboardStats{
		TotalIncidents: len(incidents),
	}

	y, m, d := asOf.Date()
	for _, incident := range incidents {
		if !incident.IsResolved {
			stats.ActiveIncidents++
			continue
		}
		if incident.ResolvedAt == nil {
			continue
		}
		ry, rm, rd := incident.ResolvedAt.In(asOf.Location()).Date()
		if ry == y && rm == m && rd == d {
			stats.ResolvedToday++
		}
	}

	for _, alert := range alerts {
		if models.CriticalAlertTypes[alert.AlertType] {
			stats.CriticalAlerts++
		}
	}

	return stats
}

// MapMarkers projects alerts joined with their incidents onto map markers,
// substituting the fallback coordinates and officer placeholders when the
// joined data is missing.
func MapMarkers(alerts []*models.Alert) []models.MapMarker {
	markers := make([]models.MapMarker, 0, len(alerts))
	for _, alert := range alerts {
		marker := models.MapMarker{
			ID:          alert.ID,
			Latitude:    defaultLatitude,
			Longitude:   defaultLongitude,
			Type:        alert.AlertType,
			RiskLevel:   models.RiskMedium,
			OfficerName: "Unknown",
			BadgeNumber: "N/A",
		}
		if incident := alert.Incident; incident != nil {
			if incident.Latitude != 0 {
				marker.Latitude = incident.Latitude
			}
			if incident.Longitude != 0 {
				marker.Longitude = incident.Longitude
			}
			marker.RiskLevel = incident.RiskLevel
			marker.IsResolved = incident.IsResolved
			if officer := incident.Officer; officer != nil {
				marker.OfficerName = officer.Name
				marker.BadgeNumber = officer.BadgeNumber
			}
		}
		markers = append(markers, marker)
	}
	return markers
}
