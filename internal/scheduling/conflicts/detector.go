// Package conflicts detects and classifies scheduling conflicts between reservations.
package conflicts

import (
	"fmt"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// Candidate a proposed or edited reservation to check against the existing ones
type Candidate struct {
	DesignerName    string
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int
	// ExcludeReservationID is the reservation being edited; it never conflicts with itself.
	ExcludeReservationID *int64
}

// FindConflicts checks candidate against reservations and, when hours is not nil, against
// the resolved opening hours of the candidate's date.
//
// Only pending and confirmed reservations of the same designer on the same date are
// considered. An overlap yields time_overlap, or double_booking when both start at the same
// minute. A closed date or an interval outside the opening hours or touching the break
// yields designer_unavailable.
func FindConflicts(
	candidate Candidate,
	reservations []domain.Reservation,
	hours *domain.EffectiveHours,
) ([]domain.ConflictRecord, error) {
	start, err := candidate.Time.Minutes()
	if err != nil {
		return nil, err
	}
	if candidate.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrInvalidRange, candidate.DurationMinutes)
	}
	if candidate.ExcludeReservationID != nil && !containsID(reservations, *candidate.ExcludeReservationID) {
		return nil, fmt.Errorf("%w: reservation id=%d", domain.ErrNotFound, *candidate.ExcludeReservationID)
	}
	end := start + candidate.DurationMinutes

	var selfIDs []int64
	if candidate.ExcludeReservationID != nil {
		selfIDs = []int64{*candidate.ExcludeReservationID}
	}

	records := make([]domain.ConflictRecord, 0)

	if hours != nil && !hours.Contains(start, end) {
		records = append(records, domain.ConflictRecord{
			Date:           candidate.Date,
			Type:           domain.ConflictDesignerUnavailable,
			ReservationIDs: selfIDs,
			DesignerName:   candidate.DesignerName,
			Message:        unavailableMessage(*hours, candidate, end),
			Severity:       domain.SeverityError,
		})
	}

	for i := range reservations {
		r := &reservations[i]
		if candidate.ExcludeReservationID != nil && r.ID == *candidate.ExcludeReservationID {
			continue
		}
		if !r.IsActive() || r.DesignerName != candidate.DesignerName || !types.SameDate(r.Date, candidate.Date) {
			continue
		}
		rStart, rEnd, err := r.Interval()
		if err != nil {
			continue
		}
		if !types.IntervalsOverlap(start, end, rStart, rEnd) {
			continue
		}

		ids := append(append([]int64{}, selfIDs...), r.ID)
		if rStart == start {
			records = append(records, domain.ConflictRecord{
				Date:           candidate.Date,
				Type:           domain.ConflictDoubleBooking,
				ReservationIDs: ids,
				DesignerName:   candidate.DesignerName,
				Message: fmt.Sprintf("%s already has reservation #%d starting at %s",
					candidate.DesignerName, r.ID, r.Time),
				Severity: domain.SeverityError,
			})
			continue
		}

		rEndTime, _ := types.FromMinutes(rEnd)
		records = append(records, domain.ConflictRecord{
			Date:           candidate.Date,
			Type:           domain.ConflictTimeOverlap,
			ReservationIDs: ids,
			DesignerName:   candidate.DesignerName,
			Message: fmt.Sprintf("%s overlaps reservation #%d (%s-%s)",
				candidate.DesignerName, r.ID, r.Time, rEndTime),
			Severity: domain.SeverityWarning,
		})
	}

	return records, nil
}

func containsID(reservations []domain.Reservation, id int64) bool {
	for i := range reservations {
		if reservations[i].ID == id {
			return true
		}
	}
	return false
}

func unavailableMessage(hours domain.EffectiveHours, candidate Candidate, end int) string {
	day := types.FormatDate(candidate.Date)
	if !hours.Open {
		if hours.Reason != "" {
			return fmt.Sprintf("salon is closed on %s: %s", day, hours.Reason)
		}
		return fmt.Sprintf("salon is closed on %s", day)
	}

	endTime, _ := types.FromMinutes(end)
	openTime, _ := types.FromMinutes(hours.OpenAt)
	closeTime, _ := types.FromMinutes(hours.CloseAt)
	if hours.Break != nil {
		breakStart, _ := types.FromMinutes(hours.Break.Start)
		breakEnd, _ := types.FromMinutes(hours.Break.End)
		return fmt.Sprintf("%s-%s is outside business hours %s-%s or overlaps the break %s-%s",
			candidate.Time, endTime, openTime, closeTime, breakStart, breakEnd)
	}
	return fmt.Sprintf("%s-%s is outside business hours %s-%s", candidate.Time, endTime, openTime, closeTime)
}
