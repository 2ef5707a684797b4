package models

import "time"

// Officer is a field officer known to the system.
type Officer struct {
	ID          string    `firestore:"id" json:"id"`
	BadgeNumber string    `firestore:"badge_number" json:"badge_number"`
	Name        string    `firestore:"name" json:"name"`
	Email       string    `firestore:"email" json:"email"`
	IsActive    bool      `firestore:"is_active" json:"is_active"`
	CreatedAt   time.Time `firestore:"created_at" json:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at" json:"updated_at"`
}
