// Package config loads engine configuration from the environment. A .env
// file is honored when present.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for values not set in the environment
const (
	DefaultHTTPAddr        = ":8080"
	DefaultStoreTimeout    = 5 * time.Second
	DefaultNotifyStartHour = 8
	DefaultNotifyEndHour   = 22
	DefaultMasteredStage   = 4
)

// Config holds the runtime configuration
type Config struct {
	HTTPAddr        string
	StoreTimeout    time.Duration
	ReviewIntervals []int // days per stage; empty means the scheduling defaults
	NotifyStartHour int
	NotifyEndHour   int
	MasteredStage   int // stage at which an item counts as mastered in stats
}

// Load reads the configuration from the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: skipping .env: %v", err)
	}

	cfg := &Config{
		HTTPAddr:        DefaultHTTPAddr,
		StoreTimeout:    DefaultStoreTimeout,
		NotifyStartHour: DefaultNotifyStartHour,
		NotifyEndHour:   DefaultNotifyEndHour,
		MasteredStage:   DefaultMasteredStage,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if raw := os.Getenv("STORE_TIMEOUT_SECONDS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.StoreTimeout = time.Duration(n) * time.Second
		}
	}
	if raw := os.Getenv("REVIEW_INTERVALS"); raw != "" {
		cfg.ReviewIntervals = parseIntervals(raw)
	}
	if raw := os.Getenv("NOTIFICATION_START_HOUR"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
			cfg.NotifyStartHour = h
		}
	}
	if raw := os.Getenv("NOTIFICATION_END_HOUR"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h <= 23 {
			cfg.NotifyEndHour = h
		}
	}
	if raw := os.Getenv("MASTERED_STAGE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.MasteredStage = n
		}
	}
	return cfg
}

// parseIntervals parses a comma-separated list of day counts. Invalid or
// non-increasing tables are rejected so a typo cannot shorten reviews.
func parseIntervals(raw string) []int {
	parts := strings.Split(raw, ",")
	intervals := make([]int, 0, len(parts))
	prev := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 || n < prev {
			log.Printf("config: ignoring invalid REVIEW_INTERVALS %q", raw)
			return nil
		}
		intervals = append(intervals, n)
		prev = n
	}
	return intervals
}
