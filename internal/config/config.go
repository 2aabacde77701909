package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the market simulator.
type Config struct {
	Port                int
	LogLevel            string
	DriftInterval       time.Duration
	StreamInterval      time.Duration
	PositionCap         int64
	DefaultStartingCash float64
	CommitRetries       int
	WebhookTimeout      time.Duration
	SeedFile            string
	MarketOpenAtStart   bool
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	IdleTimeout         time.Duration
	ShutdownTimeout     time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	driftInterval, err := getDuration("DRIFT_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid DRIFT_INTERVAL: %w", err)
	}
	if driftInterval <= 0 {
		return nil, fmt.Errorf("invalid DRIFT_INTERVAL: must be positive")
	}

	streamInterval, err := getDuration("STREAM_INTERVAL", 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid STREAM_INTERVAL: %w", err)
	}
	if streamInterval <= 0 {
		return nil, fmt.Errorf("invalid STREAM_INTERVAL: must be positive")
	}

	positionCap, err := getInt("POSITION_CAP", 1000)
	if err != nil {
		return nil, fmt.Errorf("invalid POSITION_CAP: %w", err)
	}
	if positionCap < 1 {
		return nil, fmt.Errorf("invalid POSITION_CAP: must be >= 1")
	}

	startingCash, err := getFloat("DEFAULT_STARTING_CASH", 100000)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_STARTING_CASH: %w", err)
	}
	if startingCash < 0 {
		return nil, fmt.Errorf("invalid DEFAULT_STARTING_CASH: must be >= 0")
	}

	commitRetries, err := getInt("COMMIT_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid COMMIT_RETRIES: %w", err)
	}
	if commitRetries < 1 {
		return nil, fmt.Errorf("invalid COMMIT_RETRIES: must be >= 1")
	}

	webhookTimeout, err := getDuration("WEBHOOK_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WEBHOOK_TIMEOUT: %w", err)
	}

	marketOpen, err := getBool("MARKET_OPEN_AT_START", true)
	if err != nil {
		return nil, fmt.Errorf("invalid MARKET_OPEN_AT_START: %w", err)
	}

	readTimeout, err := getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:                port,
		LogLevel:            logLevel,
		DriftInterval:       driftInterval,
		StreamInterval:      streamInterval,
		PositionCap:         int64(positionCap),
		DefaultStartingCash: startingCash,
		CommitRetries:       commitRetries,
		WebhookTimeout:      webhookTimeout,
		SeedFile:            getStr("SEED_FILE", ""),
		MarketOpenAtStart:   marketOpen,
		ReadTimeout:         readTimeout,
		WriteTimeout:        writeTimeout,
		IdleTimeout:         idleTimeout,
		ShutdownTimeout:     shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getFloat(key string, defaultVal float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseBool(v)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
