package config

import "time"

const (
	DefaultAPIBaseURL = "http://localhost:8000"

	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryBackoff   = 1 * time.Second

	DefaultSnapshotDir = ".glamora"

	// Static business-hours grid: half-hour slots, last slot 17:30.
	DefaultDayStart     = "09:00"
	DefaultDayEnd       = "18:00"
	DefaultSlotInterval = 30 * time.Minute

	DefaultConfirmationDismiss = 5 * time.Second
	DefaultTeardownDelay       = 7 * time.Second

	DefaultLogLevel = "info"
)
