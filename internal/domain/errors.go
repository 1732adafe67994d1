package domain

import (
	"errors"

	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

var (
	// ErrInvalidFormat is returned for malformed time or date strings.
	ErrInvalidFormat = types.ErrInvalidFormat

	// ErrInvalidRange is returned for out-of-range values (open >= close, negative minutes, bad weekday).
	ErrInvalidRange = types.ErrInvalidRange

	// ErrInvalidTransition is returned when a status change is not in the transition table.
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrNotFound is returned when a referenced entity is absent from the supplied set.
	ErrNotFound = errors.New("domain: not found")

	// ErrConflictsDetected is returned when a reservation write is refused because of conflicts.
	ErrConflictsDetected = errors.New("domain: reservation conflicts detected")
)
