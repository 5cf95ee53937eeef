// Package config loads runtime settings from the environment, with an
// optional .env file for local use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkravets/shopify-sheet-sync/internal/shopify"
)

// Config holds everything the sync run needs from the environment.
type Config struct {
	// Shopify credentials
	Shop       string
	AdminToken string
	APIVersion string

	// HTTP / retry tuning
	TimeoutSeconds  int
	MaxRetries      int
	BackoffBaseMS   int
	BackoffMaxMS    int
	RetryBudgetMS   int
	MutationsPerSec float64

	LogLevel string
}

// Load reads a .env file if present, then the environment. All required
// Shopify variables are reported together when missing.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Shop:            getEnv("SHOPIFY_SHOP", ""),
		AdminToken:      getEnv("SHOPIFY_ADMIN_TOKEN", ""),
		APIVersion:      getEnv("SHOPIFY_API_VERSION", ""),
		TimeoutSeconds:  getEnvAsInt("SYNC_TIMEOUT_SECONDS", 30),
		MaxRetries:      getEnvAsInt("SYNC_MAX_RETRIES", 5),
		BackoffBaseMS:   getEnvAsInt("SYNC_BACKOFF_BASE_MS", 1000),
		BackoffMaxMS:    getEnvAsInt("SYNC_BACKOFF_MAX_MS", 16000),
		RetryBudgetMS:   getEnvAsInt("SYNC_RETRY_BUDGET_MS", 60000),
		MutationsPerSec: getEnvAsFloat("SYNC_MUTATIONS_PER_SEC", 0),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	var missing []string
	if cfg.Shop == "" {
		missing = append(missing, "SHOPIFY_SHOP")
	}
	if cfg.AdminToken == "" {
		missing = append(missing, "SHOPIFY_ADMIN_TOKEN")
	}
	if cfg.APIVersion == "" {
		missing = append(missing, "SHOPIFY_API_VERSION")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// RetryPolicy converts the millisecond knobs into the client's policy.
func (c *Config) RetryPolicy() shopify.RetryPolicy {
	return shopify.RetryPolicy{
		MaxAttempts:  c.MaxRetries,
		BaseDelay:    time.Duration(c.BackoffBaseMS) * time.Millisecond,
		MaxDelay:     time.Duration(c.BackoffMaxMS) * time.Millisecond,
		MaxTotalWait: time.Duration(c.RetryBudgetMS) * time.Millisecond,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
