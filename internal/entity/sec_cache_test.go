package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSECDataCache_IsExpired(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	row := SECDataCache{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, row.IsExpired(now))
	assert.True(t, row.IsExpired(now.Add(time.Hour)), "expiry instant counts as expired")
	assert.True(t, row.IsExpired(now.Add(2*time.Hour)))
}
