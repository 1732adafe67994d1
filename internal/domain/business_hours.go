package domain

import (
	"fmt"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// RegularHours weekly opening hours for one weekday (0=Sunday .. 6=Saturday)
type RegularHours struct {
	DayOfWeek  int
	IsOpen     bool
	OpenTime   *types.TimeString
	CloseTime  *types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	UpdatedAt  time.Time
}

// Validate checks the record when it is written by an administrator or loaded from a seed file
func (h *RegularHours) Validate() error {
	if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
		return fmt.Errorf("%w: day of week %d, expected 0-6", ErrInvalidRange, h.DayOfWeek)
	}
	if !h.IsOpen {
		return validateBreakPair(h.BreakStart, h.BreakEnd)
	}
	return validateWindow(h.OpenTime, h.CloseTime, h.BreakStart, h.BreakEnd)
}

// SpecialHoursType kind of a one-off override
type SpecialHoursType string

const (
	SpecialHoursClosed   SpecialHoursType = "closed"
	SpecialHoursModified SpecialHoursType = "modified"
)

// SpecialHours one-off override of the regular hours for a calendar date
type SpecialHours struct {
	ID         int64
	Date       time.Time
	Type       SpecialHoursType
	OpenTime   *types.TimeString
	CloseTime  *types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	Reason     *string
	CreatedAt  time.Time
}

// Validate checks a special-hours record on creation.
// A modified record may omit open/close, in which case the weekday's regular times apply.
func (s *SpecialHours) Validate() error {
	switch s.Type {
	case SpecialHoursClosed:
		return nil
	case SpecialHoursModified:
	default:
		return fmt.Errorf("%w: special hours type %q", ErrInvalidFormat, s.Type)
	}

	if (s.OpenTime == nil) != (s.CloseTime == nil) {
		return fmt.Errorf("%w: open and close time must be set together", ErrInvalidRange)
	}
	if s.OpenTime == nil {
		return validateBreakPair(s.BreakStart, s.BreakEnd)
	}
	return validateWindow(s.OpenTime, s.CloseTime, s.BreakStart, s.BreakEnd)
}

// Holiday a named date; recurring holidays repeat every year on the same month and day
type Holiday struct {
	ID          int64
	Date        time.Time
	Name        string
	IsRecurring bool
	IsClosed    bool
	CreatedAt   time.Time
}

// Matches reports whether the holiday falls on date
func (h *Holiday) Matches(date time.Time) bool {
	if h.IsRecurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return types.SameDate(h.Date, date)
}

// Validate checks a holiday on creation
func (h *Holiday) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("%w: holiday name is required", ErrInvalidFormat)
	}
	if len(h.Name) > MaxNameLength {
		return fmt.Errorf("%w: holiday name longer than %d", ErrInvalidRange, MaxNameLength)
	}
	if h.Date.IsZero() {
		return fmt.Errorf("%w: holiday date is required", ErrInvalidFormat)
	}
	return nil
}

func validateWindow(open, closeAt, breakStart, breakEnd *types.TimeString) error {
	if open == nil || closeAt == nil {
		return fmt.Errorf("%w: open day requires open and close time", ErrInvalidRange)
	}
	openMin, err := open.Minutes()
	if err != nil {
		return err
	}
	closeMin, err := closeAt.EndMinutes()
	if err != nil {
		return err
	}
	if openMin >= closeMin {
		return fmt.Errorf("%w: open time %s must be before close time %s", ErrInvalidRange, *open, *closeAt)
	}

	if err := validateBreakPair(breakStart, breakEnd); err != nil {
		return err
	}
	if breakStart == nil {
		return nil
	}

	bs, _ := breakStart.Minutes()
	be, _ := breakEnd.EndMinutes()
	if bs < openMin || be > closeMin {
		return fmt.Errorf("%w: break %s-%s must be within %s-%s", ErrInvalidRange, *breakStart, *breakEnd, *open, *closeAt)
	}
	return nil
}

func validateBreakPair(breakStart, breakEnd *types.TimeString) error {
	if breakStart == nil && breakEnd == nil {
		return nil
	}
	if breakStart == nil || breakEnd == nil {
		return fmt.Errorf("%w: break start and end must be set together", ErrInvalidRange)
	}
	bs, err := breakStart.Minutes()
	if err != nil {
		return err
	}
	be, err := breakEnd.EndMinutes()
	if err != nil {
		return err
	}
	if bs >= be {
		return fmt.Errorf("%w: break start %s must be before break end %s", ErrInvalidRange, *breakStart, *breakEnd)
	}
	return nil
}
