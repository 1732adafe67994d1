package conflicts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

func TestBuildIndex_MutualOverlapIsOneGroup(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(3, "Kim", "10:30", 60, domain.StatusConfirmed),
		reservation(1, "Kim", "10:00", 90, domain.StatusConfirmed),
		reservation(2, "Kim", "10:15", 60, domain.StatusPending),
		reservation(4, "Kim", "11:00", 30, domain.StatusConfirmed),
	}

	index := BuildIndex(reservations)

	require.Len(t, index["2025-09-20"], 1)
	record := index["2025-09-20"][0]
	assert.Equal(t, domain.ConflictTimeOverlap, record.Type)
	assert.Equal(t, []int64{1, 2, 3, 4}, record.ReservationIDs)
}

func TestBuildIndex_ChainSplitsIntoMutualGroups(t *testing.T) {
	// #1 and #3 do not overlap each other, only through #2
	reservations := []domain.Reservation{
		reservation(3, "Kim", "11:30", 60, domain.StatusConfirmed),
		reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed),
		reservation(2, "Kim", "10:30", 90, domain.StatusConfirmed),
	}

	records := BuildIndex(reservations)["2025-09-20"]

	require.Len(t, records, 2)
	assert.Equal(t, []int64{1, 2}, records[0].ReservationIDs)
	assert.Equal(t, []int64{2, 3}, records[1].ReservationIDs)
	for _, r := range records {
		assert.Equal(t, domain.ConflictTimeOverlap, r.Type)
		assert.Contains(t, r.Message, "2 overlapping reservations")
	}
}

func TestBuildIndex_LongReservationSharedByGroups(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "Kim", "10:00", 180, domain.StatusConfirmed),
		reservation(2, "Kim", "10:15", 30, domain.StatusConfirmed),
		reservation(3, "Kim", "11:00", 30, domain.StatusConfirmed),
	}

	records := BuildIndex(reservations)["2025-09-20"]

	require.Len(t, records, 2)
	assert.Equal(t, []int64{1, 2}, records[0].ReservationIDs)
	assert.Equal(t, []int64{1, 3}, records[1].ReservationIDs)
}

func TestBuildIndex_SameStartIsDoubleBooking(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed),
		reservation(2, "Kim", "10:00", 30, domain.StatusConfirmed),
	}

	records := BuildIndex(reservations)["2025-09-20"]

	require.Len(t, records, 1)
	assert.Equal(t, domain.ConflictDoubleBooking, records[0].Type)
	assert.Equal(t, domain.SeverityError, records[0].Severity)
}

func TestBuildIndex_SeparateRunsAndDesigners(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "Park", "09:00", 60, domain.StatusConfirmed),
		reservation(2, "Park", "09:30", 60, domain.StatusConfirmed),
		reservation(3, "Park", "10:30", 30, domain.StatusConfirmed), // touches #2
		reservation(4, "Park", "14:00", 60, domain.StatusConfirmed),
		reservation(5, "Park", "14:30", 30, domain.StatusConfirmed),
		reservation(6, "Kim", "09:00", 60, domain.StatusConfirmed),
		reservation(7, "Kim", "09:30", 60, domain.StatusCancelled),
		reservation(8, "Ahn", "13:00", 60, domain.StatusPending),
		reservation(9, "Ahn", "13:30", 60, domain.StatusPending),
	}

	records := BuildIndex(reservations)["2025-09-20"]

	require.Len(t, records, 3)
	assert.Equal(t, "Ahn", records[0].DesignerName)
	assert.Equal(t, []int64{8, 9}, records[0].ReservationIDs)
	assert.Equal(t, "Park", records[1].DesignerName)
	assert.Equal(t, []int64{1, 2}, records[1].ReservationIDs)
	assert.Equal(t, []int64{4, 5}, records[2].ReservationIDs)
}

func TestBuildIndex_NoConflicts(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed),
		reservation(2, "Kim", "11:00", 60, domain.StatusConfirmed),
	}

	assert.Empty(t, BuildIndex(reservations))
	assert.Empty(t, BuildIndex(nil))
}

func TestBuildIndex_ConsistentWithFindConflicts(t *testing.T) {
	reservations := []domain.Reservation{
		reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed),
		reservation(2, "Kim", "10:30", 60, domain.StatusConfirmed),
	}

	index := BuildIndex(reservations)
	found, err := FindConflicts(Candidate{
		DesignerName: "Kim", Date: day, Time: "10:30", DurationMinutes: 60,
		ExcludeReservationID: &reservations[1].ID,
	}, reservations, nil)

	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Len(t, index["2025-09-20"], 1)
	assert.Equal(t, found[0].Type, index["2025-09-20"][0].Type)
	assert.ElementsMatch(t, found[0].ReservationIDs, index["2025-09-20"][0].ReservationIDs)
}

func TestFlatten_OrdersByDate(t *testing.T) {
	second := reservation(3, "Kim", "10:00", 60, domain.StatusConfirmed)
	second.Date = day.AddDate(0, 0, -1)
	third := reservation(4, "Kim", "10:30", 60, domain.StatusConfirmed)
	third.Date = second.Date

	reservations := []domain.Reservation{
		reservation(1, "Kim", "10:00", 60, domain.StatusConfirmed),
		reservation(2, "Kim", "10:30", 60, domain.StatusConfirmed),
		second, third,
	}

	flat := Flatten(BuildIndex(reservations))

	require.Len(t, flat, 2)
	assert.Equal(t, []int64{3, 4}, flat[0].ReservationIDs)
	assert.Equal(t, []int64{1, 2}, flat[1].ReservationIDs)
}
