package models

// DashboardStats are the summary counters shown at the top of the dashboard,
// recomputed in full on every data refresh.
type DashboardStats struct {
	TotalIncidents  int `json:"total_incidents"`
	ActiveIncidents int `json:"active_incidents"`
	ResolvedToday   int `json:"resolved_today"`
	CriticalAlerts  int `json:"critical_alerts"`
}

// MapMarker projects an alert and its incident onto the map view.
type MapMarker struct {
	ID          string         `json:"id"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Type        EscalationType `json:"type"`
	RiskLevel   RiskLevel      `json:"risk_level"`
	OfficerName string         `json:"officer_name"`
	BadgeNumber string         `json:"badge_number"`
	IsResolved  bool           `json:"is_resolved"`
}

// QuickAction is a dashboard shortcut button definition.
type QuickAction struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Icon    string `json:"icon"`
	Variant string `json:"variant"`
}
