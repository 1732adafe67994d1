package domain

// Default configuration values
const (
	DefaultSlotStepMinutes     = 30
	DefaultReservationDuration = 60
	DefaultConflictCacheTTL    = 60 // seconds
)

// Business validation constants
const (
	MinSlotStepMinutes     = 5
	MaxSlotStepMinutes     = 240
	MaxReservationDuration = 480 // 8 hours
	MaxNotesLength         = 500
	MaxReasonLength        = 500
	MaxNameLength          = 100
	MaxConflictRangeDays   = 92
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy a designer's time and take part in conflict checks
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses statuses ignored by conflict detection
var InactiveStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
