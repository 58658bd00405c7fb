package config

const (
	EnvAPIBaseURL = "SALON_API_BASE_URL"
	EnvAuthToken  = "SALON_AUTH_TOKEN"
	EnvLogLevel   = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRetries     = "MAX_RETRIES"
	EnvRetryBackoff   = "RETRY_BACKOFF"

	EnvSnapshotDir = "SNAPSHOT_DIR"

	EnvDayStart     = "BOOKING_DAY_START"
	EnvDayEnd       = "BOOKING_DAY_END"
	EnvSlotInterval = "BOOKING_SLOT_INTERVAL"

	EnvConfirmationDismiss = "CONFIRMATION_DISMISS_DELAY"
	EnvTeardownDelay       = "BOOKING_TEARDOWN_DELAY"
)
