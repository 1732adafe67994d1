package conflicts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

var day = time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)

func reservation(id int64, designer string, at types.TimeString, duration int, status domain.ReservationStatus) domain.Reservation {
	return domain.Reservation{
		ID:              id,
		CustomerName:    "customer",
		DesignerName:    designer,
		Date:            day,
		Time:            at,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestFindConflicts_KimOverlap(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed),
		reservation(2, "Kim", "10:30", 60, domain.StatusPending),
	}

	for _, self := range []int64{1, 2} {
		r := reservations[self-1]
		got, err := FindConflicts(Candidate{
			DesignerName:         r.DesignerName,
			Date:                 r.Date,
			Time:                 r.Time,
			DurationMinutes:      r.DurationMinutes,
			ExcludeReservationID: ptr.Ptr(self),
		}, reservations, nil)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.ConflictTimeOverlap, got[0].Type)
		assert.Equal(t, domain.SeverityWarning, got[0].Severity)
		assert.ElementsMatch(t, []int64{1, 2}, got[0].ReservationIDs)
	}
}

func TestFindConflicts_SameStartIsDoubleBooking(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed),
		reservation(2, "Kim", "10:00", 60, domain.StatusConfirmed),
	}

	got, err := FindConflicts(Candidate{
		DesignerName: "Kim", Date: day, Time: "10:00", DurationMinutes: 60,
		ExcludeReservationID: ptr.Ptr(int64(2)),
	}, reservations, nil)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ConflictDoubleBooking, got[0].Type)
	assert.Equal(t, []int64{2, 1}, got[0].ReservationIDs)
}

func TestFindConflicts_NewCandidate(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed),
		reservation(2, "Lee", "10:00", 60, domain.StatusConfirmed),
		reservation(3, "Kim", "11:00", 60, domain.StatusConfirmed),
	}

	got, err := FindConflicts(Candidate{DesignerName: "Kim", Date: day, Time: "10:30", DurationMinutes: 60}, reservations, nil)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{1}, got[0].ReservationIDs)
	assert.Equal(t, []int64{3}, got[1].ReservationIDs)
}

func TestFindConflicts_IgnoresInactiveAndOtherDays(t *testing.T) {
	other := reservation(4, "Kim", "10:00", 60, domain.StatusConfirmed)
	other.Date = day.AddDate(0, 0, 1)

	reservations := []domain.Reservation{
		reservation(1, "Kim", "10:00", 60, domain.StatusCompleted),
		reservation(2, "Kim", "10:00", 60, domain.StatusCancelled),
		reservation(3, "Kim", "10:00", 60, domain.StatusNoShow),
		other,
	}

	got, err := FindConflicts(Candidate{DesignerName: "Kim", Date: day, Time: "10:00", DurationMinutes: 60}, reservations, nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindConflicts_TouchingIsNotAConflict(t *testing.T) {
	reservations := []domain.Reservation{reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed)}

	got, err := FindConflicts(Candidate{DesignerName: "Kim", Date: day, Time: "11:00", DurationMinutes: 60}, reservations, nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindConflicts_DesignerUnavailable(t *testing.T) {
	open := domain.OpenHours(domain.SourceRegular, 9*60, 18*60, &domain.BreakWindow{Start: 12 * 60, End: 13 * 60})
	closed := domain.Closed(domain.SourceHoliday, "Chuseok")

	tests := []struct {
		name  string
		hours domain.EffectiveHours
		at    types.TimeString
		want  bool
	}{
		{name: "inside hours", hours: open, at: "10:00", want: false},
		{name: "overlaps break", hours: open, at: "11:30", want: true},
		{name: "runs past close", hours: open, at: "17:30", want: true},
		{name: "before open", hours: open, at: "08:30", want: true},
		{name: "closed day", hours: closed, at: "10:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := tt.hours
			got, err := FindConflicts(Candidate{DesignerName: "Kim", Date: day, Time: tt.at, DurationMinutes: 60}, nil, &hours)
			require.NoError(t, err)

			if !tt.want {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, domain.ConflictDesignerUnavailable, got[0].Type)
			assert.Equal(t, domain.SeverityError, got[0].Severity)
		})
	}
}

func TestFindConflicts_UnavailableCarriesEditedID(t *testing.T) {
	reservations := []domain.Reservation{reservation(5, "Kim", "10:00", 60, domain.StatusConfirmed)}
	closed := domain.Closed(domain.SourceSpecial, "Renovation")

	got, err := FindConflicts(Candidate{
		DesignerName: "Kim", Date: day, Time: "10:00", DurationMinutes: 60,
		ExcludeReservationID: ptr.Ptr(int64(5)),
	}, reservations, &closed)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []int64{5}, got[0].ReservationIDs)
	assert.Contains(t, got[0].Message, "Renovation")
}

func TestFindConflicts_Errors(t *testing.T) {
	_, err := FindConflicts(Candidate{DesignerName: "Kim", Date: day, Time: "25:00", DurationMinutes: 60}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	_, err = FindConflicts(Candidate{DesignerName: "Kim", Date: day, Time: "10:00", DurationMinutes: 0}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = FindConflicts(Candidate{
		DesignerName: "Kim", Date: day, Time: "10:00", DurationMinutes: 30,
		ExcludeReservationID: ptr.Ptr(int64(99)),
	}, []domain.Reservation{reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed)}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindConflicts_SkipsMalformedStoredTimes(t *testing.T) {
	reservations := []domain.Reservation{reservation(1, "Kim", "xx:yy", 60, domain.StatusConfirmed)}

	got, err := FindConflicts(Candidate{DesignerName: "Kim", Date: day, Time: "10:00", DurationMinutes: 60}, reservations, nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}
