package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AuthSecret string // Required: key for signing session tokens and code hashes

	OTPTTL            time.Duration // Optional: sign-in code lifetime (default: 10m)
	OTPResendCooldown time.Duration // Optional: minimum gap between codes per email (default: 1m)
	OTPMaxAttempts    int           // Optional: wrong guesses before a code is voided (default: 5)
	SessionTTL        time.Duration // Optional: session token lifetime (default: 30 days)
	AllowedEmails     []string      // Optional: comma-separated sign-in allow list (default: everyone)

	SMTPAddr     string // Optional: host:port of the SMTP relay; empty logs codes in dev
	SMTPUsername string // Optional: SMTP auth username
	SMTPPassword string // Optional: SMTP auth password
	SMTPFrom     string // Optional: From address for code emails
	SiteName     string // Optional: name used in code emails (default: Blush)

	DatabaseFile string        // Optional: path to SQLite database file (default: ./gallery.db)
	UploadDir    string        // Optional: directory for media blobs (default: ./uploads)
	SignedURLTTL time.Duration // Optional: lifetime of signed upload/download URLs (default: 15m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		AuthSecret: os.Getenv("AUTH_SECRET"),

		OTPTTL:            getEnvDurationOrDefault("OTP_TTL", 10*time.Minute),
		OTPResendCooldown: getEnvDurationOrDefault("OTP_RESEND_COOLDOWN", time.Minute),
		OTPMaxAttempts:    getEnvIntOrDefault("OTP_MAX_ATTEMPTS", 5),
		SessionTTL:        getEnvDurationOrDefault("SESSION_TTL", 30*24*time.Hour),
		AllowedEmails:     splitList(os.Getenv("ALLOWED_EMAILS")),

		SMTPAddr:     os.Getenv("SMTP_ADDR"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "noreply@localhost"),
		SiteName:     getEnvOrDefault("SITE_NAME", "Blush"),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "gallery.db"),
		UploadDir:    getEnvOrDefault("UPLOAD_DIR", "uploads"),
		SignedURLTTL: getEnvDurationOrDefault("SIGNED_URL_TTL", 15*time.Minute),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds (how the old deployment configured TTLs)
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
