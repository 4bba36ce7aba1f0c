// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Port           string
	DBPath         string
	GeminiAPIKey   string
	GeminiModel    string
	CORSOrigin     string
	MaxUploadBytes int64

	// BankAccount and ShareBaseURL feed the copyable summary footer.
	BankAccount  string
	ShareBaseURL string
}

// Load reads configuration from environment variables and an optional .env
// file. Only GEMINI_API_KEY is required; everything else has a default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		Port:           valueOrDefault(k.String("PORT"), "8080"),
		DBPath:         valueOrDefault(k.String("DB_PATH"), "./data/payments.db"),
		GeminiAPIKey:   k.String("GEMINI_API_KEY"),
		GeminiModel:    valueOrDefault(k.String("GEMINI_MODEL"), "gemini-2.5-flash"),
		CORSOrigin:     valueOrDefault(k.String("CORS_ORIGIN"), "*"),
		MaxUploadBytes: parseBytes(k.String("MAX_UPLOAD_BYTES"), 4<<20),
		BankAccount:    k.String("BANK_ACCOUNT"),
		ShareBaseURL:   valueOrDefault(k.String("SHARE_BASE_URL"), "pay.hyuni.dev"),
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseBytes(value string, fallback int64) int64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
