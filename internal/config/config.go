package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port           string
	Env            string // development, production
	ServerURL      string // public base used to build absolute file URLs
	AllowedOrigins []string
	BodyLimit      int

	Database DatabaseConfig
	Auth     AuthConfig
	Media    MediaConfig
	Mail     MailConfig
	Log      LogConfig

	// RedisURL enables the session revocation list when set
	RedisURL string
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Type            string // mysql, postgres, sqlite, sqlserver
	DSN             string // connection string; a file path for sqlite
	ConnectionLimit int
}

// AuthConfig contains session token settings.
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// MediaConfig contains upload settings.
type MediaConfig struct {
	Root         string
	MaxFileBytes int64
}

// MailConfig contains outbound mail settings.
type MailConfig struct {
	Transport    string // smtp, ses, log
	From         string
	AdminEmail   string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
	AWSRegion    string
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	mailFrom := getEnv("MAIL_FROM", getEnv("EMAIL_USER", ""))

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", getEnv("NODE_ENV", "development")),
		ServerURL:      strings.TrimSuffix(getEnv("SERVER_URL", "http://localhost:8080"), "/"),
		AllowedOrigins: allowedOrigins(),
		BodyLimit:      getEnvAsInt("BODY_LIMIT_BYTES", 110*1024*1024),
		Database: DatabaseConfig{
			Type:            getEnv("DB_TYPE", "sqlite"),
			DSN:             getEnv("DB_DSN", "singletea.db"),
			ConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		},
		Media: MediaConfig{
			Root:         getEnv("UPLOAD_DIR", "upload"),
			MaxFileBytes: int64(getEnvAsInt("MAX_FILE_BYTES", 5*1024*1024)),
		},
		Mail: MailConfig{
			Transport:    getEnv("MAIL_TRANSPORT", "log"),
			From:         mailFrom,
			AdminEmail:   getEnv("ADMIN_EMAIL", mailFrom),
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", mailFrom),
			SMTPPassword: getEnv("SMTP_PASSWORD", getEnv("EMAIL_PASS", "")),
			SMTPUseTLS:   getEnvAsBool("SMTP_TLS", true),
			AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		RedisURL: getEnv("REDIS_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Media.MaxFileBytes <= 0 {
		return fmt.Errorf("MAX_FILE_BYTES must be positive")
	}
	switch c.Mail.Transport {
	case "log":
	case "smtp":
		if c.Mail.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required for the smtp mail transport")
		}
		if c.Mail.From == "" {
			return fmt.Errorf("MAIL_FROM is required for the smtp mail transport")
		}
	case "ses":
		if c.Mail.From == "" {
			return fmt.Errorf("MAIL_FROM is required for the ses mail transport")
		}
	default:
		return fmt.Errorf("unsupported mail transport: %s", c.Mail.Transport)
	}
	return nil
}

// IsProduction reports whether cookies must carry the Secure flag
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, Env: %s, DB: %s, Uploads: %s, Mail: %s, Auth: *** (masked) ***}",
		c.Port, c.Env, c.Database.Type, c.Media.Root, c.Mail.Transport)
}

// allowedOrigins merges ALLOWED_ORIGINS with the CLIENT_URL and FRONTEND_URL settings
func allowedOrigins() []string {
	seen := make(map[string]struct{})
	var origins []string
	add := func(v string) {
		v = strings.TrimSuffix(strings.TrimSpace(v), "/")
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		origins = append(origins, v)
	}
	for _, v := range strings.Split(getEnv("ALLOWED_ORIGINS", ""), ",") {
		add(v)
	}
	add(getEnv("CLIENT_URL", ""))
	add(getEnv("FRONTEND_URL", ""))
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	return origins
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
