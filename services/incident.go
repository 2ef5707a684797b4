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

// ErrAlreadyResolved is returned when resolving an incident that has
// already been resolved; the transition is one-way and not repeatable.
var ErrAlreadyResolved = fmt.Errorf("incident already resolved")

type IncidentService struct {
	firebaseService *FirebaseService
	officerService  *OfficerService
}

func NewIncidentService(firebaseService *FirebaseService, officerService *OfficerService) *IncidentService {
	return &IncidentService{
		firebaseService: firebaseService,
		officerService:  officerService,
	}
}

// CreateIncident persists a new unresolved incident. Callers are the
// detection ingest paths; the dashboard never creates incidents.
func (s *IncidentService) CreateIncident(ctx context.Context, ev *models.DetectionEvent) (*models.Incident, error) {
	if !ev.EscalationType.Valid() {
		return nil, fmt.Errorf("invalid escalation_type %q", ev.EscalationType)
	}
	if !ev.RiskLevel.Valid() {
		return nil, fmt.Errorf("invalid risk_level %q", ev.RiskLevel)
	}

	createdAt := ev.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	incident := &models.Incident{
		ID:             uuid.New().String(),
		OfficerID:      ev.OfficerID,
		EscalationType: ev.EscalationType,
		RiskLevel:      ev.RiskLevel,
		Description:    ev.Description,
		Latitude:       ev.Latitude,
		Longitude:      ev.Longitude,
		IsResolved:     false,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}

	_, err := s.firebaseService.Firestore.Collection("incidents").Doc(incident.ID).Set(ctx, incident)
	if err != nil {
		return nil, fmt.Errorf("failed to create incident: %w", err)
	}

	return incident, nil
}

func (s *IncidentService) GetIncident(ctx context.Context, incidentID string) (*models.Incident, error) {
	doc, err := s.firebaseService.Firestore.Collection("incidents").Doc(incidentID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}

	var incident models.Incident
	if err := doc.DataTo(&incident); err != nil {
		return nil, fmt.Errorf("failed to parse incident: %w", err)
	}
	incident.ID = doc.Ref.ID

	if officer, err := s.officerService.GetOfficer(ctx, incident.OfficerID); err == nil {
		incident.Officer = officer
	}

	return &incident, nil
}

// GetIncidents returns every incident with its officer joined, sorted by
// created_at descending.
func (s *IncidentService) GetIncidents(ctx context.Context) ([]*models.Incident, error) {
	iter := s.firebaseService.Firestore.Collection("incidents").Documents(ctx)

	var incidents []*models.Incident
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate incidents: %w", err)
		}

		var incident models.Incident
		if err := doc.DataTo(&incident); err != nil {
			return nil, fmt.Errorf("failed to parse incident: %w", err)
		}
		incident.ID = doc.Ref.ID
		incidents = append(incidents, &incident)
	}

	// Sort in memory to avoid requiring a composite index
	sort.Slice(incidents, func(i, j int) bool {
		return incidents[i].CreatedAt.After(incidents[j].CreatedAt)
	})

	// Stitch officers in with one fetch per distinct officer
	officers := make(map[string]*models.Officer)
	for _, incident := range incidents {
		officer, ok := officers[incident.OfficerID]
		if !ok {
			var err error
			officer, err = s.officerService.GetOfficer(ctx, incident.OfficerID)
			if err != nil {
				continue
			}
			officers[incident.OfficerID] = officer
		}
		incident.Officer = officer
	}

	return incidents, nil
}

// ResolveIncident performs the one-way unresolved -> resolved transition.
// Resolving an already-resolved incident returns ErrAlreadyResolved; there
// is no un-resolve path. The check-then-set runs in a transaction so two
// concurrent resolves cannot both succeed.
func (s *IncidentService) ResolveIncident(ctx context.Context, incidentID string) (*models.Incident, error) {
	ref := s.firebaseService.Firestore.Collection("incidents").Doc(incidentID)
	now := time.Now()

	var incident models.Incident
	err := s.firebaseService.Firestore.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return fmt.Errorf("failed to get incident: %w", err)
		}
		if err := doc.DataTo(&incident); err != nil {
			return fmt.Errorf("failed to parse incident: %w", err)
		}
		incident.ID = doc.Ref.ID
		if incident.IsResolved {
			return ErrAlreadyResolved
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "is_resolved", Value: true},
			{Path: "resolved_at", Value: now},
			{Path: "updated_at", Value: now},
		})
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyResolved) {
			return nil, ErrAlreadyResolved
		}
		return nil, fmt.Errorf("failed to resolve incident: %w", err)
	}

	incident.IsResolved = true
	incident.ResolvedAt = &now
	incident.UpdatedAt = now
	if officer, err := s.officerService.GetOfficer(ctx, incident.OfficerID); err == nil {
		incident.Officer = officer
	}
	return &incident, nil
}
