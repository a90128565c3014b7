package models

const (
	NoticeOK    = "ok"
	NoticeError = "error"
)

const (
	// DateLayout is the wire form of a calendar day.
	DateLayout = "2006-01-02"

	// TimestampLayout is how the API renders start_at/end_at.
	TimestampLayout = "2006-01-02 15:04"

	// FormTimestampLayout matches a datetime-local form value; create requests use it.
	FormTimestampLayout = "2006-01-02T15:04"

	// ClockLayout is the time-of-day shown in the bookings table.
	ClockLayout = "15:04"
)

const (
	DefaultLocale   = "ar"
	DefaultTimezone = "Asia/Qatar"

	// DefaultNoticeTTL seconds a notice stays on screen
	DefaultNoticeTTL = 5

	// DefaultDraftMinutes length of the default draft window
	DefaultDraftMinutes = 60

	// DefaultAPITimeout seconds per booking API call
	DefaultAPITimeout = 10

	DefaultRateLimitBurst = 5

	// DefaultStateTTL is how long an idle chat's state is kept.
	DefaultStateTTL = 7 * 24 * 60 * 60 // seconds
)
