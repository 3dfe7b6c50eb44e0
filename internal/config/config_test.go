package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/casualjim/redraw"
	"github.com/casualjim/redraw/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"NATS_URL",
	"REDRAW_SUBJECT",
	"REDRAW_LOG_LEVEL",
	"REDRAW_FIELD_WIDTH",
	"REDRAW_REPORT_UNKNOWN",
	"REDRAW_STRICT_ARITY",
}

// clearEnv unsets keys for the duration of the test.
func clearEnv(t *testing.T) {
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		NATSURL:    "nats://127.0.0.1:4222",
		Subject:    "redraw.events",
		LogLevel:   slog.LevelInfo,
		FieldWidth: redraw.Width64,
	}, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NATS_URL", "nats://broker:4222")
	t.Setenv("REDRAW_SUBJECT", "ui.nvim")
	t.Setenv("REDRAW_LOG_LEVEL", "debug")
	t.Setenv("REDRAW_FIELD_WIDTH", "32")
	t.Setenv("REDRAW_REPORT_UNKNOWN", "true")
	t.Setenv("REDRAW_STRICT_ARITY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "nats://broker:4222", cfg.NATSURL)
	assert.Equal(t, "ui.nvim", cfg.Subject)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, redraw.Width32, cfg.FieldWidth)
	assert.True(t, cfg.ReportUnknown)
	assert.True(t, cfg.StrictArity)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"REDRAW_FIELD_WIDTH":    "16",
		"REDRAW_LOG_LEVEL":      "loud",
		"REDRAW_STRICT_ARITY":   "maybe",
		"REDRAW_REPORT_UNKNOWN": "perhaps",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse env:")
		})
	}
}

func TestDispatcherOptions(t *testing.T) {
	cfg := Config{FieldWidth: redraw.Width32, StrictArity: true}
	d := redraw.New(cfg.DispatcherOptions()...)
	assert.Equal(t, redraw.Width32, d.FieldWidth())

	_, err := d.Decode("grid_clear", wire.From([]any{[]any{uint64(1) << 40}}))
	assert.Error(t, err)

	_, err = d.Decode("grid_clear", wire.From([]any{[]any{1, 2}}))
	assert.Error(t, err)
}
