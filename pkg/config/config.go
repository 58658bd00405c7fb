package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"glamora/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	AuthToken  string

	RequestTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration

	SnapshotDir string

	DayStart     string
	DayEnd       string
	SlotInterval time.Duration

	ConfirmationDismiss time.Duration
	TeardownDelay       time.Duration

	Log *logger.Logger
}

func Load(component string) *Config {
	// Optional .env for local development; silently absent elsewhere.
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL: getEnvStr(EnvAPIBaseURL, DefaultAPIBaseURL),
		AuthToken:  getEnvStr(EnvAuthToken, ""),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRetries:     getEnvNum(EnvMaxRetries, DefaultMaxRetries),
		RetryBackoff:   getEnvDuration(EnvRetryBackoff, DefaultRetryBackoff),

		SnapshotDir: getEnvStr(EnvSnapshotDir, DefaultSnapshotDir),

		DayStart:     getEnvStr(EnvDayStart, DefaultDayStart),
		DayEnd:       getEnvStr(EnvDayEnd, DefaultDayEnd),
		SlotInterval: getEnvDuration(EnvSlotInterval, DefaultSlotInterval),

		ConfirmationDismiss: getEnvDuration(EnvConfirmationDismiss, DefaultConfirmationDismiss),
		TeardownDelay:       getEnvDuration(EnvTeardownDelay, DefaultTeardownDelay),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Component: component,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (cfg *Config) Validate() error {
	var errs []string

	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		errs = append(errs, fmt.Sprintf("APIBaseURL must start with http:// or https://, got: %s", cfg.APIBaseURL))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("MaxRetries cannot be negative, got: %d", cfg.MaxRetries))
	}
	if cfg.RetryBackoff <= 0 {
		errs = append(errs, fmt.Sprintf("RetryBackoff must be positive, got: %s", cfg.RetryBackoff))
	}
	if cfg.SnapshotDir == "" {
		errs = append(errs, "SnapshotDir cannot be empty")
	}
	if !timeOfDayRegex.MatchString(cfg.DayStart) {
		errs = append(errs, fmt.Sprintf("DayStart must be in HH:MM format (00:00-23:59), got: %s", cfg.DayStart))
	}
	if !timeOfDayRegex.MatchString(cfg.DayEnd) {
		errs = append(errs, fmt.Sprintf("DayEnd must be in HH:MM format (00:00-23:59), got: %s", cfg.DayEnd))
	}
	if cfg.DayStart >= cfg.DayEnd {
		errs = append(errs, fmt.Sprintf("DayStart (%s) must be before DayEnd (%s)", cfg.DayStart, cfg.DayEnd))
	}
	if cfg.SlotInterval <= 0 || cfg.SlotInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("SlotInterval must be between 1ns and 24h, got: %s", cfg.SlotInterval))
	}
	if cfg.ConfirmationDismiss <= 0 {
		errs = append(errs, fmt.Sprintf("ConfirmationDismiss must be positive, got: %s", cfg.ConfirmationDismiss))
	}
	if cfg.TeardownDelay <= 0 {
		errs = append(errs, fmt.Sprintf("TeardownDelay must be positive, got: %s", cfg.TeardownDelay))
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"api_base_url", cfg.APIBaseURL,
		"auth_token_set", cfg.AuthToken != "",
		"request_timeout", cfg.RequestTimeout,
		"max_retries", cfg.MaxRetries,
		"retry_backoff", cfg.RetryBackoff,
		"snapshot_dir", cfg.SnapshotDir,
		"day_start", cfg.DayStart,
		"day_end", cfg.DayEnd,
		"slot_interval", cfg.SlotInterval,
		"confirmation_dismiss", cfg.ConfirmationDismiss,
		"teardown_delay", cfg.TeardownDelay,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
