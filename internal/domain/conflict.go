package domain

import (
	"fmt"
	"time"
)

// ConflictType classification of a reservation conflict
type ConflictType string

const (
	ConflictTimeOverlap         ConflictType = "time_overlap"
	ConflictDesignerUnavailable ConflictType = "designer_unavailable"
	ConflictDoubleBooking       ConflictType = "double_booking"
)

// Severity how serious a conflict is
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ConflictRecord a detected problem with one or more reservations
type ConflictRecord struct {
	Date           time.Time
	Type           ConflictType
	ReservationIDs []int64
	DesignerName   string
	Message        string
	Severity       Severity
}

// HasErrors reports whether any record has error severity
func HasErrors(records []ConflictRecord) bool {
	for _, r := range records {
		if r.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ConflictsError refuses a write because the reservation conflicts with others.
// errors.Is(err, ErrConflictsDetected) matches it.
type ConflictsError struct {
	Conflicts []ConflictRecord
}

func (e *ConflictsError) Error() string {
	return fmt.Sprintf("%v: %d conflict(s)", ErrConflictsDetected, len(e.Conflicts))
}

func (e *ConflictsError) Unwrap() error {
	return ErrConflictsDetected
}
