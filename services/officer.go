package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/VineethSendilraj/COPilot/models"
	"google.golang.org/api/iterator"
)

type OfficerService struct {
	firebaseService *FirebaseService
}

func NewOfficerService(firebaseService *FirebaseService) *OfficerService {
	return &OfficerService{firebaseService: firebaseService}
}

func (s *OfficerService) GetOfficers(ctx context.Context) ([]*models.Officer, error) {
	iter := s.firebaseService.Firestore.Collection("officers").Documents(ctx)

	var officers []*models.Officer
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate officers: %w", err)
		}

		var officer models.Officer
		if err := doc.DataTo(&officer); err != nil {
			return nil, fmt.Errorf("failed to parse officer: %w", err)
		}
		officer.ID = doc.Ref.ID
		officers = append(officers, &officer)
	}

	// Sort in memory to avoid requiring a composite index
	sort.Slice(officers, func(i, j int) bool {
		return officers[i].CreatedAt.After(officers[j].CreatedAt)
	})

	return officers, nil
}

func (s *OfficerService) GetOfficer(ctx context.Context, officerID string) (*models.Officer, error) {
	doc, err := s.firebaseService.Firestore.Collection("officers").Doc(officerID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get officer: %w", err)
	}

	var officer models.Officer
	if err := doc.DataTo(&officer); err != nil {
		return nil, fmt.Errorf("failed to parse officer: %w", err)
	}
	officer.ID = doc.Ref.ID

	return &officer, nil
}

// GetOfficerByBadge looks an officer up by badge number. The mobile client
// identifies its officer this way.
func (s *OfficerService) GetOfficerByBadge(ctx context.Context, badgeNumber string) (*models.Officer, error) {
	iter := s.firebaseService.Firestore.Collection("officers").
		Where("badge_number", "==", badgeNumber).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("no officer with badge %s", badgeNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query officer by badge: %w", err)
	}

	var officer models.Officer
	if err := doc.DataTo(&officer); err != nil {
		return nil, fmt.Errorf("failed to parse officer: %w", err)
	}
	officer.ID = doc.Ref.ID

	return &officer, nil
}
