package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "100000", cfg.TotalBudget)
	assert.Equal(t, 10*time.Second, cfg.AdvanceInterval)
	assert.Equal(t, 3*time.Second, cfg.NotificationTTL)
	assert.Equal(t, "dashboard_ledger_events", cfg.TopicLedgerEvents)
	assert.Equal(t, "dashboard_odds_updates", cfg.TopicOddsUpdates)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOTAL_BUDGET", "2500.50")
	t.Setenv("ODDS_ADVANCE_INTERVAL", "2s")
	t.Setenv("NOTIFICATION_TTL", "garbage")
	t.Setenv("OUTBOX_SIZE", "16")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_PORT", "9000")

	cfg := Load()
	assert.Equal(t, "2500.50", cfg.TotalBudget)
	assert.Equal(t, 2*time.Second, cfg.AdvanceInterval)
	assert.Equal(t, 3*time.Second, cfg.NotificationTTL, "invalid duration falls back to default")
	assert.Equal(t, 16, cfg.OutboxSize)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "9000", cfg.HTTPPort)
}

func TestGetInt_RejectsNonPositive(t *testing.T) {
	t.Setenv("OUTBOX_SIZE", "-3")
	assert.Equal(t, 256, getInt("OUTBOX_SIZE", 256))
}
