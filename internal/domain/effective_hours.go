package domain

// HoursSource names the rule that produced the effective hours of a date
type HoursSource string

const (
	SourceHoliday HoursSource = "holiday"
	SourceSpecial HoursSource = "special"
	SourceRegular HoursSource = "regular"
	SourceDefault HoursSource = "default" // no rule matched
)

// BreakWindow a closed interval inside the opening hours, in minutes since midnight
type BreakWindow struct {
	Start int
	End   int
}

// EffectiveHours the resolved opening hours of one calendar date.
// When Open is false the minute fields are meaningless.
type EffectiveHours struct {
	Open    bool
	OpenAt  int // minutes since midnight
	CloseAt int
	Break   *BreakWindow
	Source  HoursSource
	Reason  string
	Notes   []string // non-closing holidays and other informational remarks
}

// Closed builds the hours of a closed date
func Closed(source HoursSource, reason string) EffectiveHours {
	return EffectiveHours{Source: source, Reason: reason}
}

// OpenHours builds the hours of an open date
func OpenHours(source HoursSource, openAt, closeAt int, brk *BreakWindow) EffectiveHours {
	return EffectiveHours{
		Open:    true,
		OpenAt:  openAt,
		CloseAt: closeAt,
		Break:   brk,
		Source:  source,
	}
}

// Contains reports whether the half-open interval [start, end) lies within the opening
// hours and does not touch the break.
func (h EffectiveHours) Contains(start, end int) bool {
	if !h.Open || start < h.OpenAt || end > h.CloseAt || start >= end {
		return false
	}
	if h.Break != nil && start < h.Break.End && h.Break.Start < end {
		return false
	}
	return true
}
