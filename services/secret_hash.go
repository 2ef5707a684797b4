package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashWebhookSecret hashes the detection webhook shared secret for storage.
func HashWebhookSecret(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("empty secret")
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckSecretHash(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}
