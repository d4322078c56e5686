package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshTokenLifecycle(t *testing.T) {
	now := time.Now()
	token := &RefreshToken{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, token.IsExpired(now))
	assert.True(t, token.IsActive(now))

	// Exactly at the expiry instant counts as expired.
	assert.True(t, token.IsExpired(token.ExpiresAt))
	assert.False(t, token.IsActive(token.ExpiresAt))

	token.Revoked = true
	assert.True(t, token.IsExpired(now.Add(2*time.Hour)))
	assert.False(t, token.IsActive(now))
}
