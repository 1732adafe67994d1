package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay is the length of a salon day in minutes; FromMinutes accepts it as "24:00".
	MinutesPerDay = 24 * 60
)

var (
	// ErrInvalidFormat is returned when a time or date string cannot be parsed.
	ErrInvalidFormat = errors.New("types: invalid format")

	// ErrInvalidRange is returned when a numeric value is outside its allowed range.
	ErrInvalidRange = errors.New("types: value out of range")
)

var timeStringPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

const endOfDay TimeString = "24:00"

// TimeString is a wall-clock time of day in "HH:MM" form, local to the salon.
type TimeString string

// NewTimeString builds a TimeString from the hour and minute of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses and normalises "H:MM"/"HH:MM" into "HH:MM".
// "24:00" is accepted here; Validate and EndMinutes decide where it may be used.
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := ToEndMinutes(s)
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes)
}

// ToMinutes converts "HH:MM" into minutes since midnight.
// Hours must be 0-23 and minutes 0-59.
func ToMinutes(s string) (int, error) {
	if !timeStringPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: time %q, expected HH:MM", ErrInvalidFormat, s)
	}

	parts := strings.SplitN(s, ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: time %q: %v", ErrInvalidFormat, s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: time %q: %v", ErrInvalidFormat, s, err)
	}

	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: time %q is not a valid time of day", ErrInvalidFormat, s)
	}

	return hours*60 + minutes, nil
}

// ToEndMinutes is ToMinutes for the end of an interval: it also accepts "24:00" as
// MinutesPerDay, so a day can close at midnight.
func ToEndMinutes(s string) (int, error) {
	if s == string(endOfDay) {
		return MinutesPerDay, nil
	}
	return ToMinutes(s)
}

// FromMinutes formats minutes since midnight as zero-padded "HH:MM".
// Values past the end of the day keep counting hours, so 1440 becomes "24:00".
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 {
		return "", fmt.Errorf("%w: negative minutes %d", ErrInvalidRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// IntervalsOverlap reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Minutes returns the time as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	return ToMinutes(string(t))
}

// AddMinutes returns t shifted by the given number of minutes.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	start, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(start + minutes)
}

// IsBefore reports whether t is strictly earlier than other.
// Malformed values compare as not before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// EndMinutes returns the time as minutes since midnight, allowing "24:00".
func (t TimeString) EndMinutes() (int, error) {
	return ToEndMinutes(string(t))
}

// Validate checks the HH:MM format of a start time.
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer. Postgres TIME columns accept "HH:MM".
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan implements sql.Scanner for TIME columns, which lib/pq returns as "HH:MM:SS" text
// or as time.Time depending on the column type.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		// lib/pq decodes TIME '24:00:00' as midnight of the following day
		if v.Day() > 1 && v.Hour() == 0 && v.Minute() == 0 {
			*t = endOfDay
			return nil
		}
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanText(string(v))
	case string:
		return t.scanText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into TimeString", ErrInvalidFormat, src)
	}
}

func (t *TimeString) scanText(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalJSON validates the time while decoding.
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if s == "" {
		*t = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
