package slots

import (
	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// MarkOccupied pairs each slot with the active reservations of one designer that overlap
// [slot, slot+duration). Reservations with malformed times are ignored.
func MarkOccupied(
	slots []types.TimeString,
	durationMinutes int,
	designer string,
	reservations []domain.Reservation,
) []domain.AvailableSlot {
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultSlotStepMinutes
	}

	result := make([]domain.AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		start, err := slot.Minutes()
		if err != nil {
			continue
		}
		end := start + durationMinutes

		var taken []int64
		for i := range reservations {
			r := &reservations[i]
			if !r.IsActive() || r.DesignerName != designer {
				continue
			}
			rStart, rEnd, err := r.Interval()
			if err != nil {
				continue
			}
			if types.IntervalsOverlap(start, end, rStart, rEnd) {
				taken = append(taken, r.ID)
			}
		}

		result = append(result, domain.AvailableSlot{
			StartTime: slot,
			Available: len(taken) == 0,
			TakenBy:   taken,
		})
	}
	return result
}
