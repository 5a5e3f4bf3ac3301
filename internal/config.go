package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	LogLevel    string
	Port        uint16
	CORSOrigins []string
	Email       EmailConfig
	Booking     BookingConfig
}

// EmailConfig selects and configures the mail transport.
// Provider is "resend" (default) or "smtp" for the legacy relay.
type EmailConfig struct {
	Provider     string
	ResendAPIKey string
	Host         string
	Port         uint16
	Username     string
	Password     string
	From         string
	FromName     string
}

// BookingConfig holds the booking proxy target and local assets.
type BookingConfig struct {
	// WebAppURL is the spreadsheet-backed booking web app the
	// /book-appointment endpoint forwards to.
	WebAppURL string

	// LogoPath is the local logo asset embedded in the PDF receipt.
	// A missing file falls back to a text title.
	LogoPath string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:         getEnv("ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        getEnvInt("PORT", 3000),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		Email: EmailConfig{
			Provider:     getEnv("EMAIL_PROVIDER", "resend"),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			Host:         getEnv("SMTP_HOST", "localhost"),
			Port:         getEnvInt("SMTP_PORT", 1025),
			Username:     getEnv("SMTP_USERNAME", ""),
			Password:     getEnv("SMTP_PASSWORD", ""),
			From:         getEnv("EMAIL_FROM", "management@wafadentalclinic.com"),
			FromName:     getEnv("EMAIL_FROM_NAME", "Wafa Dental Clinic"),
		},
		Booking: BookingConfig{
			WebAppURL: getEnv("WEB_APP_URL", ""),
			LogoPath:  getEnv("LOGO_PATH", "./images/logo.png"),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	switch cfg.Email.Provider {
	case "resend":
		if cfg.Env == "prod" && cfg.Email.ResendAPIKey == "" {
			return nil, fmt.Errorf("RESEND_API_KEY required when using the resend provider in production")
		}
	case "smtp":
		if cfg.Email.Host == "" {
			return nil, fmt.Errorf("SMTP_HOST required when using the smtp provider")
		}
	default:
		return nil, fmt.Errorf("invalid EMAIL_PROVIDER %q: must be resend or smtp", cfg.Email.Provider)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
