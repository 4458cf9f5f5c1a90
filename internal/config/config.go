package config

import (
	"fmt"
	"os"
	"time"

	"souq-market/utils"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds the process settings read from the environment
type Config struct {
	Port           string
	Store          string
	DatabaseURL    string
	DatabaseConfig DatabaseConfig
	JWTSecret      string
	MongoURI       string
	MongoDBName    string
	SweepInterval  time.Duration
	CommissionRate decimal.Decimal
	LogLevel       string
	AppEnv         string
}

// DatabaseConfig is the libpq-style connection settings used when DATABASE_URL is unset
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LoadConfig reads .env when present, then the environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.Info(".env file not found, using environment variables", nil)
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("PGHOST", "localhost"),
		Port:     getEnv("PGPORT", "5432"),
		User:     getEnv("PGUSER", "souq"),
		Password: getEnv("PGPASSWORD", "souq"),
		Name:     getEnv("PGDATABASE", "souq"),
		SSLMode:  getEnv("PGSSLMODE", "disable"),
	}

	dbURL := getEnv("DATABASE_URL", fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name, dbConfig.SSLMode))

	sweep, err := time.ParseDuration(getEnv("SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid SWEEP_INTERVAL: %w", err)
	}

	rate, err := decimal.NewFromString(getEnv("COMMISSION_RATE", "0.025"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid COMMISSION_RATE: %w", err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Store:          getEnv("STORE", StoreMemory),
		DatabaseURL:    dbURL,
		DatabaseConfig: dbConfig,
		JWTSecret:      getEnv("JWT_SECRET", ""),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDBName:    getEnv("MONGO_DB_NAME", "souq"),
		SweepInterval:  sweep,
		CommissionRate: rate,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AppEnv:         getEnv("APP_ENV", "production"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.Store != StoreMemory && cfg.Store != StorePostgres {
		return nil, fmt.Errorf("config: STORE must be %q or %q, got %q", StoreMemory, StorePostgres, cfg.Store)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// IsProduction reports whether gin should run in release mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// getEnv returns the environment variable or defaultValue when it is not set
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
