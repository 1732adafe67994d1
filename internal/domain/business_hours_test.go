package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

func ts(s string) *types.TimeString {
	return ptr.Ptr(types.TimeString(s))
}

func TestRegularHours_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hours   RegularHours
		wantErr error
	}{
		{
			name:  "open day with break",
			hours: RegularHours{DayOfWeek: 1, IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("18:00"), BreakStart: ts("12:00"), BreakEnd: ts("13:00")},
		},
		{
			name:  "closed day",
			hours: RegularHours{DayOfWeek: 0},
		},
		{
			name:    "weekday out of range",
			hours:   RegularHours{DayOfWeek: 7},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "open equals close",
			hours:   RegularHours{DayOfWeek: 2, IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("09:00")},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "missing close",
			hours:   RegularHours{DayOfWeek: 2, IsOpen: true, OpenTime: ts("09:00")},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "malformed open",
			hours:   RegularHours{DayOfWeek: 2, IsOpen: true, OpenTime: ts("9h"), CloseTime: ts("18:00")},
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "break with one end",
			hours:   RegularHours{DayOfWeek: 3, IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("18:00"), BreakStart: ts("12:00")},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "reversed break",
			hours:   RegularHours{DayOfWeek: 3, IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("18:00"), BreakStart: ts("13:00"), BreakEnd: ts("12:00")},
			wantErr: ErrInvalidRange,
		},
		{
			name:    "break outside hours",
			hours:   RegularHours{DayOfWeek: 3, IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("18:00"), BreakStart: ts("17:30"), BreakEnd: ts("18:30")},
			wantErr: ErrInvalidRange,
		},
		{
			name:  "open until midnight",
			hours: RegularHours{DayOfWeek: 5, IsOpen: true, OpenTime: ts("14:00"), CloseTime: ts("24:00"), BreakStart: ts("23:00"), BreakEnd: ts("24:00")},
		},
		{
			name:    "midnight is not an opening time",
			hours:   RegularHours{DayOfWeek: 5, IsOpen: true, OpenTime: ts("24:00"), CloseTime: ts("24:00")},
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "break cannot start at midnight",
			hours:   RegularHours{DayOfWeek: 5, IsOpen: true, OpenTime: ts("14:00"), CloseTime: ts("24:00"), BreakStart: ts("24:00"), BreakEnd: ts("24:00")},
			wantErr: ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hours.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSpecialHours_Validate(t *testing.T) {
	closed := SpecialHours{Type: SpecialHoursClosed}
	assert.NoError(t, closed.Validate())

	inherit := SpecialHours{Type: SpecialHoursModified}
	assert.NoError(t, inherit.Validate())

	short := SpecialHours{Type: SpecialHoursModified, OpenTime: ts("10:00"), CloseTime: ts("15:00")}
	assert.NoError(t, short.Validate())

	halfSet := SpecialHours{Type: SpecialHoursModified, OpenTime: ts("10:00")}
	assert.ErrorIs(t, halfSet.Validate(), ErrInvalidRange)

	unknown := SpecialHours{Type: "vacation"}
	assert.ErrorIs(t, unknown.Validate(), ErrInvalidFormat)
}

func TestHoliday_Matches(t *testing.T) {
	christmas := Holiday{Date: time.Date(2020, 12, 25, 0, 0, 0, 0, time.UTC), IsRecurring: true, IsClosed: true, Name: "Christmas"}
	assert.True(t, christmas.Matches(time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, christmas.Matches(time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)))

	once := Holiday{Date: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), Name: "Substitute holiday"}
	assert.True(t, once.Matches(time.Date(2024, 5, 6, 15, 0, 0, 0, time.UTC)))
	assert.False(t, once.Matches(time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)))
}

func TestHoliday_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Holiday{Date: time.Now()}).Validate(), ErrInvalidFormat)
	assert.ErrorIs(t, (&Holiday{Name: "New Year"}).Validate(), ErrInvalidFormat)
	assert.NoError(t, (&Holiday{Name: "New Year", Date: time.Now()}).Validate())
}

func TestEffectiveHours_Contains(t *testing.T) {
	h := OpenHours(SourceRegular, 540, 1080, &BreakWindow{Start: 720, End: 780})

	assert.True(t, h.Contains(540, 600))
	assert.True(t, h.Contains(660, 720))
	assert.True(t, h.Contains(780, 840))
	assert.False(t, h.Contains(690, 750), "overlaps break")
	assert.False(t, h.Contains(1050, 1110), "runs past close")
	assert.False(t, h.Contains(510, 570), "starts before open")

	assert.False(t, Closed(SourceHoliday, "Christmas").Contains(600, 660))
}

func TestReservation_IntervalAndStatus(t *testing.T) {
	r := Reservation{Time: "10:30", DurationMinutes: 90, Status: StatusConfirmed}

	start, end, err := r.Interval()
	assert.NoError(t, err)
	assert.Equal(t, 630, start)
	assert.Equal(t, 720, end)
	assert.True(t, r.IsActive())

	r.Status = StatusCompleted
	assert.False(t, r.IsActive())
	assert.True(t, r.Status.IsTerminal())
	assert.False(t, ReservationStatus("archived").IsValid())
}

func TestConflictsError(t *testing.T) {
	var err error = &ConflictsError{Conflicts: []ConflictRecord{{Type: ConflictDoubleBooking, Severity: SeverityError}}}

	assert.ErrorIs(t, err, ErrConflictsDetected)
	assert.Contains(t, err.Error(), "1 conflict")

	var ce *ConflictsError
	assert.ErrorAs(t, err, &ce)
	assert.True(t, HasErrors(ce.Conflicts))
}

func TestReservation_Validate(t *testing.T) {
	valid := func() Reservation {
		return Reservation{
			CustomerName:    "Lee",
			DesignerName:    "Kim",
			Service:         "cut",
			Date:            time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Time:            "10:00",
			DurationMinutes: 60,
		}
	}

	r := valid()
	assert.NoError(t, r.Validate())

	r = valid()
	r.CustomerName = ""
	assert.ErrorIs(t, r.Validate(), ErrInvalidFormat)

	r = valid()
	r.Time = "25:00"
	assert.ErrorIs(t, r.Validate(), ErrInvalidFormat)

	r = valid()
	r.DurationMinutes = 0
	assert.ErrorIs(t, r.Validate(), ErrInvalidRange)

	r = valid()
	r.DurationMinutes = MaxReservationDuration + 1
	assert.ErrorIs(t, r.Validate(), ErrInvalidRange)
}
