package services

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"

	kms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
)

// EncryptCredential envelope-encrypts a credential: a fresh 256-bit DEK is
// wrapped by Cloud KMS and the plaintext is AES-GCM encrypted under the DEK.
// Returns base64 ciphertext and base64 wrapped DEK for storage.
func EncryptCredential(ctx context.Context, keyName, plaintext string) (string, string, error) {
	if plaintext == "" {
		return "", "", errors.New("no data to encrypt")
	}

	dek := make([]byte, 32)
	if _, err := rand.Read(dek); err != nil {
		return "", "", err
	}

	kmsClient, err := kms.NewKeyManagementClient(ctx)
	if err != nil {
		return "", "", err
	}
	defer kmsClient.Close()

	resp, err := kmsClient.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:      keyName,
		Plaintext: dek,
	})
	if err != nil {
		return "", "", err
	}
	wrappedDEK := base64.StdEncoding.EncodeToString(resp.Ciphertext)

	ciphertext, err := encryptAESGCM(dek, []byte(plaintext))
	if err != nil {
		return "", "", err
	}

	return ciphertext, wrappedDEK, nil
}

// DecryptCredential unwraps the DEK via Cloud KMS and AES-GCM decrypts the
// base64 ciphertext (nonce || ciphertext).
func DecryptCredential(ctx context.Context, keyName, ciphertext, wrappedDEK string) (string, error) {
	if wrappedDEK == "" {
		return "", errors.New("no wrapped DEK provided")
	}

	dekBytes, err := base64.StdEncoding.DecodeString(wrappedDEK)
	if err != nil {
		return "", err
	}

	kmsClient, err := kms.NewKeyManagementClient(ctx)
	if err != nil {
		return "", err
	}
	defer kmsClient.Close()

	resp, err := kmsClient.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:       keyName,
		Ciphertext: dekBytes,
	})
	if err != nil {
		return "", err
	}

	return decryptAESGCM(resp.Plaintext, ciphertext)
}

// encryptAESGCM encrypts plaintext with the provided key. The returned
// string is base64(nonce || ciphertext).
func encryptAESGCM(key []byte, plaintext []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	out := append(nonce, ciphertext...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// decryptAESGCM expects base64(nonce || ciphertext) and returns plaintext.
func decryptAESGCM(key []byte, b64 string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("malformed ciphertext")
	}
	pt, err := gcm.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}
