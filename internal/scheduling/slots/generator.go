// Package slots generates bookable start times from resolved opening hours.
package slots

import (
	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// Generate returns the start times from opening (inclusive) to closing (exclusive) every
// stepMinutes, skipping starts inside the break. The last start before closing is included
// even if a reservation there would run past closing. A non-positive step falls back to
// the default of 30 minutes.
func Generate(hours domain.EffectiveHours, stepMinutes int) []types.TimeString {
	if !hours.Open || hours.OpenAt >= hours.CloseAt {
		return []types.TimeString{}
	}
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}

	result := make([]types.TimeString, 0, (hours.CloseAt-hours.OpenAt)/stepMinutes+1)
	for t := hours.OpenAt; t < hours.CloseAt; t += stepMinutes {
		if inBreak(hours.Break, t) {
			continue
		}
		slot, err := types.FromMinutes(t)
		if err != nil {
			continue
		}
		result = append(result, slot)
	}
	return result
}

// FitsDuration reports whether a reservation of duration minutes starting at start ends by
// closing time and does not run into the break.
func FitsDuration(hours domain.EffectiveHours, start types.TimeString, duration int) bool {
	if duration <= 0 {
		return false
	}
	startMin, err := start.Minutes()
	if err != nil {
		return false
	}
	return hours.Contains(startMin, startMin+duration)
}

func inBreak(b *domain.BreakWindow, t int) bool {
	return b != nil && t >= b.Start && t < b.End
}
