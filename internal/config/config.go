// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/casualjim/redraw"
	"github.com/fogfish/opts"
)

type Config struct {
	NATSURL       string            `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	Subject       string            `env:"REDRAW_SUBJECT" envDefault:"redraw.events"`
	LogLevel      slog.Level        `env:"REDRAW_LOG_LEVEL" envDefault:"info"`
	FieldWidth    redraw.FieldWidth `env:"REDRAW_FIELD_WIDTH" envDefault:"64"`
	ReportUnknown bool              `env:"REDRAW_REPORT_UNKNOWN" envDefault:"false"`
	StrictArity   bool              `env:"REDRAW_STRICT_ARITY" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DispatcherOptions translates the decoding policy into dispatcher options.
func (c Config) DispatcherOptions() []opts.Option[redraw.Dispatcher] {
	return []opts.Option[redraw.Dispatcher]{
		redraw.WithFieldWidth(c.FieldWidth),
		redraw.ReportUnknown(c.ReportUnknown),
		redraw.StrictArity(c.StrictArity),
	}
}
