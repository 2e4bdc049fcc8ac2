package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Tesseract-Nexus/go-shared/secrets"
)

// Event backends
const (
	EventsBackendNATS  = "nats"
	EventsBackendKafka = "kafka"
	EventsBackendNone  = "none"
)

// Config holds all configuration for the tracking service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Events   EventsConfig
	Cache    CacheConfig
	SeedDemo bool
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the optional Redis connection. An empty URL disables caching.
type RedisConfig struct {
	URL      string
	Password string
}

// EventsConfig selects where tracking events are published
type EventsConfig struct {
	Backend      string
	NATSURL      string
	KafkaBrokers string
	KafkaTopic   string
}

// CacheConfig holds read-cache lifetimes
type CacheConfig struct {
	ListTTL      time.Duration
	AnalyticsTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8090"),
			Env:  getEnv("NODE_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: secrets.GetDBPassword(),
			DBName:   getEnv("DB_NAME", "tracking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: secrets.GetRedisPassword(),
		},
		Events: EventsConfig{
			Backend:      strings.ToLower(getEnv("EVENTS_BACKEND", EventsBackendNATS)),
			NATSURL:      getEnv("NATS_URL", "nats://nats.nats.svc.cluster.local:4222"),
			KafkaBrokers: getEnv("KAFKA_BROKERS", ""),
			KafkaTopic:   getEnv("KAFKA_TOPIC", "tracking-events"),
		},
		Cache: CacheConfig{
			ListTTL:      getEnvAsDuration("CACHE_LIST_TTL", 2*time.Minute),
			AnalyticsTTL: getEnvAsDuration("CACHE_ANALYTICS_TTL", 5*time.Minute),
		},
		SeedDemo: getEnvBool("SEED_DEMO_DATA", false),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	switch c.Events.Backend {
	case EventsBackendNATS, EventsBackendNone:
	case EventsBackendKafka:
		if c.Events.KafkaBrokers == "" {
			return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_BACKEND=kafka")
		}
	default:
		return fmt.Errorf("EVENTS_BACKEND must be one of nats, kafka, none (got %q)", c.Events.Backend)
	}

	if c.Cache.ListTTL <= 0 || c.Cache.AnalyticsTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
