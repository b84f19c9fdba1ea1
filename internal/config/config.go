package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Remote operations API that validates credentials.
	OpsAPIBaseURL string

	// Mail delivery: "api" posts to the mail-send endpoint, "smtp" talks to
	// an MTA directly.
	MailTransport  string
	MailAPIBaseURL string
	MailFrom       string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string

	JWTPrivateKeyPath      string
	JWTPublicKeyPath       string
	JWTExpiry              time.Duration
	RefreshTokenExpiryDays int

	PasscodeLifetime    time.Duration
	ResendCooldown      time.Duration
	PasscodeMaxAttempts int
	SweepInterval       time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// RefreshTokenExpiry returns the refresh token lifetime as a duration.
func (c *Config) RefreshTokenExpiry() time.Duration {
	return time.Duration(c.RefreshTokenExpiryDays) * 24 * time.Hour
}

// IsProduction reports whether the service runs in a production deployment.
// The passcode peek route is never registered when this is true.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		OpsAPIBaseURL: getEnv("OPS_API_BASE_URL", "http://localhost:4000"),

		MailTransport:  getEnv("MAIL_TRANSPORT", "api"),
		MailAPIBaseURL: getEnv("MAIL_API_BASE_URL", "http://localhost:4000"),
		MailFrom:       getEnv("MAIL_FROM", "noreply@sitecrew.app"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnv("SMTP_PORT", "1025"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),

		JWTPrivateKeyPath:      getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:       getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:              time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,
		RefreshTokenExpiryDays: getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30),

		PasscodeLifetime:    getEnvDuration("PASSCODE_LIFETIME", 5*time.Minute),
		ResendCooldown:      getEnvDuration("RESEND_COOLDOWN", 60*time.Second),
		PasscodeMaxAttempts: getEnvInt("PASSCODE_MAX_ATTEMPTS", 10),
		SweepInterval:       getEnvDuration("PASSCODE_SWEEP_INTERVAL", 10*time.Minute),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
