package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL   string
	ListenAddr    string
	AdminAPIToken string
	ClientURL     string // Base URL linked from notification emails
	LogLevel      string
	Environment   string

	// SMTP settings. When SMTPHost is empty, email delivery is disabled
	// and notifications are written to the log instead.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailSender  string

	ReconcileInterval time.Duration
	PassTimeout       time.Duration
	ReminderWindow    time.Duration
	ReminderThrottle  time.Duration
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables; errors are
	// ignored so a missing .env file is fine.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.AdminAPIToken = os.Getenv("ADMIN_API_TOKEN")
	if cfg.AdminAPIToken == "" {
		return nil, fmt.Errorf("ADMIN_API_TOKEN is not set")
	}

	cfg.ListenAddr = os.Getenv("HTTP_LISTEN_ADDR")
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	cfg.ClientURL = os.Getenv("CLIENT_URL")
	if cfg.ClientURL == "" {
		cfg.ClientURL = "https://unihaven.app"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost != "" {
		portStr := os.Getenv("SMTP_PORT")
		if portStr == "" {
			portStr = "465"
		}
		cfg.SMTPPort, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
		cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
		cfg.EmailSender = os.Getenv("EMAIL_SENDER")
		if cfg.EmailSender == "" {
			return nil, fmt.Errorf("EMAIL_SENDER is not set (required when SMTP_HOST is set)")
		}
	}

	cfg.ReconcileInterval, err = durationEnv("RECONCILE_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.PassTimeout, err = durationEnv("RECONCILE_PASS_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.ReminderWindow, err = durationEnv("AD_REMINDER_WINDOW", 72*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.ReminderThrottle, err = durationEnv("AD_REMINDER_THROTTLE", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return d, nil
}
