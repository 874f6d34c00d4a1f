package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	App          AppConfig
	Users        UsersConfig
	Publications PublicationsConfig
	Upstream     UpstreamConfig
	Catalog      CatalogConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// UsersConfig points at the users (Alma) upstream.
type UsersConfig struct {
	BaseURL string
	APIKey  string
}

// PublicationsConfig points at the publications (Primo) upstream.
type PublicationsConfig struct {
	BaseURL          string
	APIKey           string
	View             string
	Scope            string
	Sort             string
	DefaultScopeTerm string
}

// UpstreamConfig is shared by both upstream clients.
type UpstreamConfig struct {
	Timeout       time.Duration
	RateLimit     float64
	Burst         int
	ProbeSchedule string
}

type CatalogConfig struct {
	TypeTablePath string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Users: UsersConfig{
			BaseURL: getEnv("ALMA_API_URL", ""),
			APIKey:  getEnv("ALMA_API_KEY", ""),
		},
		Publications: PublicationsConfig{
			BaseURL:          getEnv("PRIMO_API_URL", ""),
			APIKey:           getEnv("PRIMO_API_KEY", ""),
			View:             getEnv("PRIMO_VID", "57BAC_INST:BAC"),
			Scope:            getEnv("PRIMO_SCOPE", "RI_BAC"),
			Sort:             getEnv("PRIMO_SORT", "date_d"),
			DefaultScopeTerm: getEnv("PRIMO_DEFAULT_SCOPE_TERM", "*"),
		},
		Upstream: UpstreamConfig{
			Timeout:       getEnvAsDuration("UPSTREAM_TIMEOUT", 30*time.Second),
			RateLimit:     getEnvAsFloat("UPSTREAM_RATE_LIMIT", 10),
			Burst:         getEnvAsInt("UPSTREAM_BURST", 20),
			ProbeSchedule: getEnv("UPSTREAM_PROBE_SCHEDULE", ""),
		},
		Catalog: CatalogConfig{
			TypeTablePath: getEnv("TYPE_TABLE_PATH", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Users.BaseURL == "" {
		return fmt.Errorf("ALMA_API_URL is required")
	}

	if c.Publications.BaseURL == "" {
		return fmt.Errorf("PRIMO_API_URL is required")
	}

	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
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
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
