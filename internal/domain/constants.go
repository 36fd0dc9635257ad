package domain

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Default availability mask, applied when a service has no explicit configuration
const (
	defaultFirstHour = 10
	defaultLastHour  = 20
)
