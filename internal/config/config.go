package config

import (
	"log"
	"os"
)

const (
	defaultDBPath   = "./breakeven.db"
	defaultPort     = "8080"
	defaultCurrency = "฿"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port          string
	DBPath        string
	SessionSecret string
	Currency      string
	Env           string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Port:          os.Getenv("PORT"),
		DBPath:        os.Getenv("DB_PATH"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		Currency:      os.Getenv("CURRENCY"),
		Env:           os.Getenv("APP_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}

	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set; sessions reset on restart")
	}

	return cfg
}

// IsDev reports whether the app runs in a development environment, where
// database migrations are applied automatically on startup.
func (c Config) IsDev() bool {
	return c.Env != "production"
}
