package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the web frontend.
// Values come from environment variables; cmd/server loads a .env
// file first when one is present.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`

	// Base URL of the tiffin backend API, e.g. http://127.0.0.1:8000/api
	APIBaseURL string `env:"API_BASE_URL,required"`
	// Base URL used to build image links (backend storage), e.g. http://127.0.0.1:8000
	AssetBaseURL string `env:"ASSET_BASE_URL"`

	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Hour of day (local time) after which tomorrow's meal selections lock.
	CutoffHour int `env:"SELECTION_CUTOFF_HOUR" envDefault:"17"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASS"`
	EmailFrom    string `env:"EMAIL_FROM"`
	ContactEmail string `env:"CONTACT_EMAIL"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
