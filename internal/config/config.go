package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Store drivers
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// DefaultWelcomeTemplate is sent to every newly created or registered customer
const DefaultWelcomeTemplate = "Welcome {first_name} {last_name}! Your {customer_type} account for {email} is ready."

var defaultDisallowedEmailDomains = []string{
	"tempmail.com",
	"10minutemail.com",
	"guerrillamail.com",
	"mailinator.com",
	"throwawaymail.com",
}

// Config holds all application configuration
type Config struct {
	Database     DatabaseConfig
	Queue        QueueConfig
	API          APIConfig
	Worker       WorkerConfig
	Store        StoreConfig
	Registration RegistrationConfig
	LogLevel     slog.Level
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// QueueConfig holds queue configuration (Redis)
type QueueConfig struct {
	Enabled   bool
	RedisURL  string
	QueueName string
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port int
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	Concurrency     int
	MaxRetryCount   int
	SuccessRate     float64
	NotifierLatency time.Duration
	WelcomeTemplate string
}

// StoreConfig selects the customer store backend
type StoreConfig struct {
	Driver string
}

// RegistrationConfig holds the self-registration policy
type RegistrationConfig struct {
	DisallowedEmailDomains []string
	PasswordHashCost       int
}

// Load reads configuration from environment variables.
// Values from a .env file in the working directory are loaded first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	apiPort, err := getEnvInt("API_PORT", 8080)
	if err != nil {
		return nil, err
	}

	workerConcurrency, err := getEnvInt("WORKER_CONCURRENCY", 5)
	if err != nil {
		return nil, err
	}

	maxRetryCount, err := getEnvInt("MAX_RETRY_COUNT", 3)
	if err != nil {
		return nil, err
	}

	hashCost, err := getEnvInt("PASSWORD_HASH_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid PASSWORD_HASH_COST %d: must be between %d and %d", hashCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	successRate, err := strconv.ParseFloat(getEnv("NOTIFIER_SUCCESS_RATE", "0.92"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFIER_SUCCESS_RATE: %w", err)
	}
	if successRate < 0 || successRate > 1 {
		return nil, fmt.Errorf("invalid NOTIFIER_SUCCESS_RATE %v: must be between 0 and 1", successRate)
	}

	notifierLatency, err := time.ParseDuration(getEnv("NOTIFIER_LATENCY", "100ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFIER_LATENCY: %w", err)
	}

	eventsEnabled, err := strconv.ParseBool(getEnv("EVENTS_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVENTS_ENABLED: %w", err)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "INFO"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	driver := strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory))
	if driver != StoreDriverMemory && driver != StoreDriverPostgres {
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: must be %s or %s", driver, StoreDriverMemory, StoreDriverPostgres)
	}

	domains := defaultDisallowedEmailDomains
	if raw, ok := os.LookupEnv("DISALLOWED_EMAIL_DOMAINS"); ok {
		domains = splitList(raw)
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "customer_registry"),
			Password: getEnv("DB_PASSWORD", "customer_registry"),
			DBName:   getEnv("DB_NAME", "customer_registry"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Queue: QueueConfig{
			Enabled:   eventsEnabled,
			RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),
			QueueName: getEnv("QUEUE_NAME", "customer_events"),
		},
		API: APIConfig{
			Port: apiPort,
		},
		Worker: WorkerConfig{
			Concurrency:     workerConcurrency,
			MaxRetryCount:   maxRetryCount,
			SuccessRate:     successRate,
			NotifierLatency: notifierLatency,
			WelcomeTemplate: getEnv("WELCOME_TEMPLATE", DefaultWelcomeTemplate),
		},
		Store: StoreConfig{
			Driver: driver,
		},
		Registration: RegistrationConfig{
			DisallowedEmailDomains: domains,
			PasswordHashCost:       hashCost,
		},
		LogLevel: logLevel,
	}, nil
}

// DSN returns the database connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

// splitList parses a comma separated list, dropping blanks
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
