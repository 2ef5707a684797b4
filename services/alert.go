package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/VineethSendilraj/COPilot/models"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

// ErrAlreadyDismissed is returned when dismissing an alert that has already
// been dismissed; the transition is one-way and not repeatable.
var ErrAlreadyDismissed = fmt.Errorf("alert already dismissed")

type AlertService struct {
	firebaseService *FirebaseService
	officerService  *OfficerService
}

func NewAlertService(firebaseService *FirebaseService, officerService *OfficerService) *AlertService {
	return &AlertService{
		firebaseService: firebaseService,
		officerService:  officerService,
	}
}

// CreateAlert persists a new active alert. The referenced incident must
// exist; incident_id is immutable after creation.
func (s *AlertService) CreateAlert(ctx context.Context, ev *models.DetectionEvent, incidentID string) (*models.Alert, error) {
	if incidentID == "" {
		return nil, fmt.Errorf("alert requires an incident_id")
	}
	if _, err := s.firebaseService.Firestore.Collection("incidents").Doc(incidentID).Get(ctx); err != nil {
		return nil, fmt.Errorf("alert references missing incident %s: %w", incidentID, err)
	}

	createdAt := ev.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	alert := &models.Alert{
		ID:          uuid.New().String(),
		OfficerID:   ev.OfficerID,
		IncidentID:  incidentID,
		AlertType:   ev.EscalationType,
		Message:     ev.Message,
		IsDismissed: false,
		CreatedAt:   createdAt,
	}

	_, err := s.firebaseService.Firestore.Collection("alerts").Doc(alert.ID).Set(ctx, alert)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	return alert, nil
}

func (s *AlertService) GetAlerts(ctx context.Context) ([]*models.Alert, error) {
	iter := s.firebaseService.Firestore.Collection("alerts").Documents(ctx)

	var alerts []*models.Alert
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate alerts: %w", err)
		}

		var alert models.Alert
		if err := doc.DataTo(&alert); err != nil {
			return nil, fmt.Errorf("failed to parse alert: %w", err)
		}
		alert.ID = doc.Ref.ID
		alerts = append(alerts, &alert)
	}

	// Sort in memory to avoid requiring a composite index
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})

	return alerts, nil
}

// GetActiveAlertsForOfficer returns the newest undismissed alerts for one
// officer with their incidents joined, capped at limit (the mobile feed
// shows five).
func (s *AlertService) GetActiveAlertsForOfficer(ctx context.Context, officerID string, limit int) ([]*models.Alert, error) {
	iter := s.firebaseService.Firestore.Collection("alerts").
		Where("officer_id", "==", officerID).
		Where("is_dismissed", "==", false).
		Documents(ctx)

	var alerts []*models.Alert
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate officer alerts: %w", err)
		}

		var alert models.Alert
		if err := doc.DataTo(&alert); err != nil {
			return nil, fmt.Errorf("failed to parse alert: %w", err)
		}
		alert.ID = doc.Ref.ID
		alerts = append(alerts, &alert)
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}

	// Join incidents (and their officers) for the surviving page only
	for _, alert := range alerts {
		doc, err := s.firebaseService.Firestore.Collection("incidents").Doc(alert.IncidentID).Get(ctx)
		if err != nil {
			continue
		}
		var incident models.Incident
		if err := doc.DataTo(&incident); err != nil {
			continue
		}
		incident.ID = doc.Ref.ID
		if officer, err := s.officerService.GetOfficer(ctx, incident.OfficerID); err == nil {
			incident.Officer = officer
		}
		alert.Incident = &incident
	}

	return alerts, nil
}

// DismissAlert performs the one-way active -> dismissed transition. The
// check-then-set runs in a transaction so two concurrent dismissals cannot
// both succeed.
func (s *AlertService) DismissAlert(ctx context.Context, alertID string) (*models.Alert, error) {
	ref := s.firebaseService.Firestore.Collection("alerts").Doc(alertID)
	now := time.Now()

	var alert models.Alert
	err := s.firebaseService.Firestore.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return fmt.Errorf("failed to get alert: %w", err)
		}
		if err := doc.DataTo(&alert); err != nil {
			return fmt.Errorf("failed to parse alert: %w", err)
		}
		alert.ID = doc.Ref.ID
		if alert.IsDismissed {
			return ErrAlreadyDismissed
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "is_dismissed", Value: true},
			{Path: "dismissed_at", Value: now},
		})
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyDismissed) {
			return nil, ErrAlreadyDismissed
		}
		return nil, fmt.Errorf("failed to dismiss alert: %w", err)
	}

	alert.IsDismissed = true
	alert.DismissedAt = &now
	return &alert, nil
}
