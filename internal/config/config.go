package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers understood by the document store.
const (
	StorageBolt     = "bolt"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	// Server
	Env        string
	Port       string
	LogLevel   string
	CORSOrigin string

	// Timezone used to decide what "today" is for streaks and the dashboard.
	Location *time.Location

	// Storage
	StorageDriver string
	BoltPath      string

	// Auth is enabled only when a passcode hash is configured.
	PasscodeHash     string
	JWTSecret        string
	JWTExpirationDur time.Duration
}

// devJWTSecret signs tokens when JWT_SECRET is unset outside production.
const devJWTSecret = "fallback-secret-key-for-dev-only"

// ErrMissingJWTSecret is returned when auth is enabled in production without
// a JWT_SECRET.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when AUTH_PASSCODE_HASH is set in production")

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:        getEnv("ENV", "development"),
		Port:       getEnv("PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", ""),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		StorageDriver: getEnv("STORAGE_DRIVER", StorageBolt),
		BoltPath:      getEnv("BOLT_PATH", "lifeseed.db"),

		PasscodeHash: getEnv("AUTH_PASSCODE_HASH", ""),
		JWTSecret:    getEnv("JWT_SECRET", devJWTSecret),
	}

	tz := getEnv("TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: invalid TIMEZONE value '%s', falling back to Local\n", tz)
		loc = time.Local
	}
	config.Location = loc

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	if err := config.validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// AuthEnabled reports whether API routes require a session token.
func (c *Config) AuthEnabled() bool {
	return c.PasscodeHash != ""
}

// validate rejects a passcode-protected production setup signed with the
// development secret. Elsewhere it only warns.
func (c *Config) validate() error {
	if !c.AuthEnabled() || c.JWTSecret != devJWTSecret {
		return nil
	}
	if c.Env == "production" {
		return ErrMissingJWTSecret
	}
	log.Println("Warning: JWT_SECRET is not set, session tokens are signed with the development secret")
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
