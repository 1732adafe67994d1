package domain

import "github.com/devbada/sisters-salon-reservation-sub001/pkg/types"

// AvailableSlot represents a bookable start time on a date
type AvailableSlot struct {
	StartTime types.TimeString
	Available bool    // false when the designer is busy or the requested duration does not fit
	TakenBy   []int64 // reservation IDs occupying the slot
}

// IsFree returns true if nothing occupies the slot
func (s *AvailableSlot) IsFree() bool {
	return s.Available && len(s.TakenBy) == 0
}
