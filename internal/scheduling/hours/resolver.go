// Package hours resolves the effective opening hours of a calendar date from holidays,
// special hours and the weekly schedule.
package hours

import (
	"fmt"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// Resolve returns the effective hours of date.
//
// Precedence: a closing holiday always wins, then special hours for the exact date, then the
// regular hours of the weekday. A date no rule covers is closed. Inconsistent stored data
// degrades instead of failing: a half-set or misplaced break is dropped and an open time not
// before the close time closes the date.
func Resolve(
	date time.Time,
	regular []domain.RegularHours,
	special []domain.SpecialHours,
	holidays []domain.Holiday,
) domain.EffectiveHours {
	var notes []string

	for i := range holidays {
		h := &holidays[i]
		if !h.Matches(date) {
			continue
		}
		if h.IsClosed {
			result := domain.Closed(domain.SourceHoliday, h.Name)
			result.Notes = notes
			return result
		}
		notes = append(notes, h.Name)
	}

	weekly := findRegular(date, regular)

	if sh := pickSpecial(date, special); sh != nil {
		result := resolveSpecial(sh, weekly)
		result.Notes = notes
		return result
	}

	if weekly == nil {
		result := domain.Closed(domain.SourceDefault, "no business hours configured")
		result.Notes = notes
		return result
	}

	var result domain.EffectiveHours
	if !weekly.IsOpen {
		result = domain.Closed(domain.SourceRegular, fmt.Sprintf("closed on %s", date.Weekday()))
	} else {
		result = window(domain.SourceRegular, weekly.OpenTime, weekly.CloseTime, weekly.BreakStart, weekly.BreakEnd)
	}
	result.Notes = notes
	return result
}

func resolveSpecial(sh *domain.SpecialHours, weekly *domain.RegularHours) domain.EffectiveHours {
	reason := ""
	if sh.Reason != nil {
		reason = *sh.Reason
	}

	if sh.Type != domain.SpecialHoursModified {
		return domain.Closed(domain.SourceSpecial, reason)
	}

	open, closeAt := sh.OpenTime, sh.CloseTime
	breakStart, breakEnd := sh.BreakStart, sh.BreakEnd

	// A modified day without its own times borrows the weekday schedule
	if open == nil || closeAt == nil {
		if weekly == nil || !weekly.IsOpen {
			return domain.Closed(domain.SourceSpecial, reason)
		}
		open, closeAt = weekly.OpenTime, weekly.CloseTime
		if breakStart == nil && breakEnd == nil {
			breakStart, breakEnd = weekly.BreakStart, weekly.BreakEnd
		}
	}

	result := window(domain.SourceSpecial, open, closeAt, breakStart, breakEnd)
	result.Reason = reason
	return result
}

// pickSpecial returns the special hours record for date. Storage keeps at most one per date;
// if several are supplied the latest created wins, then the highest ID.
func pickSpecial(date time.Time, special []domain.SpecialHours) *domain.SpecialHours {
	var best *domain.SpecialHours
	for i := range special {
		sh := &special[i]
		if !types.SameDate(sh.Date, date) {
			continue
		}
		if best == nil ||
			sh.CreatedAt.After(best.CreatedAt) ||
			(sh.CreatedAt.Equal(best.CreatedAt) && sh.ID > best.ID) {
			best = sh
		}
	}
	return best
}

func findRegular(date time.Time, regular []domain.RegularHours) *domain.RegularHours {
	weekday := int(date.Weekday())
	for i := range regular {
		if regular[i].DayOfWeek == weekday {
			return &regular[i]
		}
	}
	return nil
}

func window(source domain.HoursSource, open, closeAt, breakStart, breakEnd *types.TimeString) domain.EffectiveHours {
	if open == nil || closeAt == nil {
		return domain.Closed(source, "opening hours are not set")
	}
	openMin, err := open.Minutes()
	if err != nil {
		return domain.Closed(source, "invalid opening time")
	}
	closeMin, err := closeAt.EndMinutes()
	if err != nil {
		return domain.Closed(source, "invalid closing time")
	}
	if openMin >= closeMin {
		return domain.Closed(source, "opening time is not before closing time")
	}

	return domain.OpenHours(source, openMin, closeMin, breakWindow(openMin, closeMin, breakStart, breakEnd))
}

func breakWindow(openMin, closeMin int, breakStart, breakEnd *types.TimeString) *domain.BreakWindow {
	if breakStart == nil || breakEnd == nil {
		return nil
	}
	bs, err := breakStart.Minutes()
	if err != nil {
		return nil
	}
	be, err := breakEnd.EndMinutes()
	if err != nil {
		return nil
	}
	if bs >= be || bs < openMin || be > closeMin {
		return nil
	}
	return &domain.BreakWindow{Start: bs, End: be}
}
