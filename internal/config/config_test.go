package config

import (
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DB_PORT", "API_PORT", "STORE_DRIVER", "QUEUE_NAME", "EVENTS_ENABLED", "LOG_LEVEL", "WELCOME_TEMPLATE",
		"NOTIFIER_LATENCY", "PASSWORD_HASH_COST",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "customer_events", cfg.Queue.QueueName)
	assert.False(t, cfg.Queue.Enabled)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, DefaultWelcomeTemplate, cfg.Worker.WelcomeTemplate)
	assert.Equal(t, 100*time.Millisecond, cfg.Worker.NotifierLatency)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Registration.PasswordHashCost)
}

func TestLoad_HashCostBounds(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, bcrypt.MaxCost} {
		t.Setenv("PASSWORD_HASH_COST", strconv.Itoa(cost))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, cost, cfg.Registration.PasswordHashCost)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DISALLOWED_EMAIL_DOMAINS", " spam.io, ,junk.net ")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Queue.Enabled)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"spam.io", "junk.net"}, cfg.Registration.DisallowedEmailDomains)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DB_PORT", "five"},
		{"API_PORT", "80a"},
		{"EVENTS_ENABLED", "maybe"},
		{"STORE_DRIVER", "sqlite"},
		{"LOG_LEVEL", "loud"},
		{"NOTIFIER_SUCCESS_RATE", "high"},
		{"NOTIFIER_SUCCESS_RATE", "1.5"},
		{"NOTIFIER_LATENCY", "soon"},
		{"PASSWORD_HASH_COST", "3"},
		{"PASSWORD_HASH_COST", "32"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
