package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookSecretHashRoundTrip(t *testing.T) {
	hash, err := HashWebhookSecret("hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckSecretHash("hunter2", hash))
	assert.False(t, CheckSecretHash("hunter3", hash))
	assert.False(t, CheckSecretHash("", hash))
}

func TestCheckSecretHashBadHash(t *testing.T) {
	assert.False(t, CheckSecretHash("hunter2", "not-a-bcrypt-hash"))
}
