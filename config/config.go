package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"

	defaultPort     = "4000"
	defaultDatabase = "test"
)

type Config struct {
	MongoURI    string        // MONGODB_URI (required for the mongo driver)
	MongoDB     string        // MONGODB_DB (default: database in the URI, else "test")
	Port        string        // PORT (default "4000")
	Driver      string        // STORE_DRIVER (default "mongo")
	DatabaseURL string        // DATABASE_URL (required for the postgres driver)
	JWTSecret   string        // ADMIN_JWT_SECRET (optional, empty = auth disabled)
	NATSURL     string        // NATS_URL (optional, empty = no NATS events)
	CORSOrigin  string        // CORS_ORIGIN (default "*")
	LogLevel    string        // LOG_LEVEL (default "info")
	Shutdown    time.Duration // SHUTDOWN_TIMEOUT (default 10s)
}

// LoadEnvFile reads a .env file into the process environment when present.
func LoadEnvFile(files ...string) error {
	return godotenv.Load(files...)
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	c := &Config{
		MongoURI:    strings.TrimSpace(os.Getenv("MONGODB_URI")),
		MongoDB:     strings.TrimSpace(os.Getenv("MONGODB_DB")),
		Port:        envOrDefault("PORT", defaultPort),
		Driver:      strings.ToLower(envOrDefault("STORE_DRIVER", DriverMongo)),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   os.Getenv("ADMIN_JWT_SECRET"),
		NATSURL:     strings.TrimSpace(os.Getenv("NATS_URL")),
		CORSOrigin:  envOrDefault("CORS_ORIGIN", "*"),
		LogLevel:    strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		Shutdown:    10 * time.Second,
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		c.Shutdown = d
	}

	if c.MongoDB == "" && c.MongoURI != "" {
		c.MongoDB = databaseFromURI(c.MongoURI)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the settings are usable for the selected driver.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required when STORE_DRIVER=%s", DriverMongo)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", DriverPostgres)
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMongo, DriverPostgres, c.Driver)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be an integer between 1 and 65535, got %q", c.Port)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}

	if c.Shutdown < 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// AuthEnabled reports whether mutating routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func databaseFromURI(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return defaultDatabase
	}
	return cs.Database
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
