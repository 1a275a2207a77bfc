package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func required() map[string]string {
	return map[string]string{
		"TELEGRAM_TOKEN": "123:abc",
		"DB_DSN":         "postgres://bot@localhost/bot",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(required()))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, 24*time.Hour, cfg.CancelCutoff)
	assert.Equal(t, time.Sunday, cfg.WeekStart)
	assert.Equal(t, "0 6 * * *", cfg.ReminderCron)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Location.String())
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	env := required()
	env["ENV"] = "production"
	env["API_URL"] = "https://api.example.com/"
	env["TIMEZONE"] = "UTC"
	env["CANCEL_CUTOFF_HOURS"] = "1.5"
	env["WEEK_START"] = "Monday"
	env["REMINDER_CRON"] = "30 7 * * 1-6"
	env["HTTP_TIMEOUT"] = "3s"

	cfg, err := FromEnv(envOf(env))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 90*time.Minute, cfg.CancelCutoff)
	assert.Equal(t, time.Monday, cfg.WeekStart)
	assert.Equal(t, "30 7 * * 1-6", cfg.ReminderCron)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "missing token", key: "TELEGRAM_TOKEN", val: ""},
		{name: "missing dsn", key: "DB_DSN", val: ""},
		{name: "negative cutoff", key: "CANCEL_CUTOFF_HOURS", val: "-1"},
		{name: "bad cutoff", key: "CANCEL_CUTOFF_HOURS", val: "day"},
		{name: "bad week start", key: "WEEK_START", val: "friday"},
		{name: "bad timezone", key: "TIMEZONE", val: "Mars/Olympus"},
		{name: "bad cron", key: "REMINDER_CRON", val: "every morning"},
		{name: "bad timeout", key: "HTTP_TIMEOUT", val: "soon"},
		{name: "zero timeout", key: "HTTP_TIMEOUT", val: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := required()
			env[tt.key] = tt.val
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
