package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 14, cfg.TrialDays)
	assert.Equal(t, 7, cfg.ReminderNoticeDays)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TRIAL_DAYS", "30")
	t.Setenv("REMINDER_NOTICE_DAYS", "3")
	t.Setenv("JWT_SECRET", "override")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30, cfg.TrialDays)
	assert.Equal(t, 3, cfg.ReminderNoticeDays)
	assert.Equal(t, "override", cfg.JWTSecret)
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("TRIAL_DAYS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.TrialDays)
}
