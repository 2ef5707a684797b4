package services

import (
	"context"
	"fmt"
	"log"

	"github.com/VineethSendilraj/COPilot/config"
)

// SettingsService reads deployment settings kept in the settings collection:
// the bcrypt hash of the detection webhook secret and the envelope-encrypted
// media API secret.
type SettingsService struct {
	firebaseService *FirebaseService
	kmsKeyName      string
}

func NewSettingsService(firebaseService *FirebaseService, kmsKeyName string) *SettingsService {
	return &SettingsService{firebaseService: firebaseService, kmsKeyName: kmsKeyName}
}

// GetWebhookSecretHash returns the stored bcrypt hash for the detection
// webhook shared secret.
func (s *SettingsService) GetWebhookSecretHash(ctx context.Context) (string, error) {
	doc, err := s.firebaseService.Firestore.Collection("settings").Doc("detection").Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load detection settings: %w", err)
	}

	hash, ok := doc.Data()["webhook_secret_hash"].(string)
	if !ok || hash == "" {
		return "", fmt.Errorf("webhook_secret_hash not configured")
	}
	return hash, nil
}

// ResolveMediaSecret returns cfg with the media API secret swapped for the
// one held encrypted in settings/livekit, when that document exists and KMS
// is configured. Otherwise the environment value stands.
func (s *SettingsService) ResolveMediaSecret(ctx context.Context, cfg config.Config) config.Config {
	if s.kmsKeyName == "" {
		return cfg
	}

	doc, err := s.firebaseService.Firestore.Collection("settings").Doc("livekit").Get(ctx)
	if err != nil {
		log.Printf("[settings] no stored media credentials, using environment: %v", err)
		return cfg
	}

	data := doc.Data()
	ciphertext, _ := data["api_secret"].(string)
	wrappedDEK, _ := data["wrapped_dek"].(string)
	if ciphertext == "" || wrappedDEK == "" {
		return cfg
	}

	secret, err := DecryptCredential(ctx, s.kmsKeyName, ciphertext, wrappedDEK)
	if err != nil {
		log.Printf("[settings] failed to decrypt stored media secret, using environment: %v", err)
		return cfg
	}

	cfg.LiveKitAPISecret = secret
	return cfg
}
