// Package config loads mealcart settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string

	// ProductsPath is the JSON product catalog export.
	ProductsPath string

	// LookupConcurrency caps concurrent product lookups and searches.
	LookupConcurrency int

	// ProductCacheTTL is how long cached product details stay fresh.
	ProductCacheTTL time.Duration

	// DensityBridging enables volume/weight conversion through ingredient densities.
	DensityBridging bool

	// MetricsTextfile, when set, receives a Prometheus textfile after each command.
	MetricsTextfile string
}

// Load reads .env files (missing files are ignored) and then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		DBPath:          getEnv("DB_PATH", "./data/mealcart.db"),
		ProductsPath:    getEnv("PRODUCTS_PATH", "./data/products.json"),
		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
	}

	var err error
	if cfg.LookupConcurrency, err = strconv.Atoi(getEnv("LOOKUP_CONCURRENCY", "5")); err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_CONCURRENCY: %w", err)
	}
	if cfg.LookupConcurrency < 1 {
		return nil, fmt.Errorf("invalid LOOKUP_CONCURRENCY: must be at least 1, got %d", cfg.LookupConcurrency)
	}
	if cfg.ProductCacheTTL, err = time.ParseDuration(getEnv("PRODUCT_CACHE_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid PRODUCT_CACHE_TTL: %w", err)
	}
	if cfg.DensityBridging, err = strconv.ParseBool(getEnv("DENSITY_BRIDGING", "true")); err != nil {
		return nil, fmt.Errorf("invalid DENSITY_BRIDGING: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
