package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// Import pipeline tuning
	ImportWorkers       int
	ImportQueueCapacity int
	MaxStoredErrors     int
	ImportRateLimit     string // ulule/limiter formatted rate, e.g. "10-M"
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "transactions-processor")
	viper.SetDefault("IMPORT_WORKERS", 2)
	viper.SetDefault("IMPORT_QUEUE_CAPACITY", 50)
	viper.SetDefault("IMPORT_MAX_STORED_ERRORS", 200)
	viper.SetDefault("IMPORT_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.ImportWorkers = viper.GetInt("IMPORT_WORKERS")
	if cfg.ImportWorkers < 1 {
		log.Printf("Warning: IMPORT_WORKERS must be positive, got %d. Defaulting to 2.\n", cfg.ImportWorkers)
		cfg.ImportWorkers = 2
	}

	cfg.ImportQueueCapacity = viper.GetInt("IMPORT_QUEUE_CAPACITY")
	if cfg.ImportQueueCapacity < 1 {
		log.Printf("Warning: IMPORT_QUEUE_CAPACITY must be positive, got %d. Defaulting to 50.\n", cfg.ImportQueueCapacity)
		cfg.ImportQueueCapacity = 50
	}

	cfg.MaxStoredErrors = viper.GetInt("IMPORT_MAX_STORED_ERRORS")
	if cfg.MaxStoredErrors < 1 {
		log.Printf("Warning: IMPORT_MAX_STORED_ERRORS must be positive, got %d. Defaulting to 200.\n", cfg.MaxStoredErrors)
		cfg.MaxStoredErrors = 200
	}

	cfg.ImportRateLimit = viper.GetString("IMPORT_RATE_LIMIT")

	return cfg, nil
}
