package domain

import (
	"fmt"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// IsValid reports whether s is one of the known statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusNoShow
}

// Reservation is a booked appointment for one customer with one designer
type Reservation struct {
	ID              int64
	CustomerName    string
	CustomerPhone   *string
	DesignerName    string
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int
	Service         string
	Status          ReservationStatus
	StatusUpdatedAt *time.Time
	StatusUpdatedBy *string
	Notes           *string

	History []StatusHistory

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies the designer's time
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// Interval returns the half-open [start, end) range of the reservation in minutes since midnight
func (r *Reservation) Interval() (start, end int, err error) {
	start, err = r.Time.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return start, start + r.DurationMinutes, nil
}

// Validate checks the fields an operator enters when creating or editing a reservation
func (r *Reservation) Validate() error {
	if r.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidFormat)
	}
	if r.DesignerName == "" {
		return fmt.Errorf("%w: designer name is required", ErrInvalidFormat)
	}
	if r.Service == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidFormat)
	}
	if len(r.CustomerName) > MaxNameLength || len(r.DesignerName) > MaxNameLength || len(r.Service) > MaxNameLength {
		return fmt.Errorf("%w: names longer than %d", ErrInvalidRange, MaxNameLength)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidFormat)
	}
	if err := r.Time.Validate(); err != nil {
		return err
	}
	if r.DurationMinutes <= 0 || r.DurationMinutes > MaxReservationDuration {
		return fmt.Errorf("%w: duration %d, expected 1-%d", ErrInvalidRange, r.DurationMinutes, MaxReservationDuration)
	}
	if r.Notes != nil && len(*r.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d", ErrInvalidRange, MaxNotesLength)
	}
	return nil
}

// EndTime returns the formatted end of the reservation
func (r *Reservation) EndTime() (types.TimeString, error) {
	return r.Time.AddMinutes(r.DurationMinutes)
}

// StatusHistory is an immutable audit record of one status change
type StatusHistory struct {
	ID            int64
	ReservationID int64
	OldStatus     ReservationStatus
	NewStatus     ReservationStatus
	ChangedBy     string
	ChangedAt     time.Time
	Reason        *string
}

// ReservationFilter filter for listing reservations
type ReservationFilter struct {
	StartDate    *time.Time         // Начало периода (включительно)
	EndDate      *time.Time         // Конец периода (включительно)
	DesignerName *string            // Фильтр по дизайнеру
	Status       *ReservationStatus // Фильтр по статусу
	ActiveOnly   bool               // Только pending/confirmed
}
