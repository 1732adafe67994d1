package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/logger"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type fixedHours struct {
	hours domain.EffectiveHours
}

func (f fixedHours) Resolve(context.Context, time.Time) (domain.EffectiveHours, error) {
	return f.hours, nil
}

type slotCounter struct {
	observed []int
}

func (s *slotCounter) ObserveSlots(count int) {
	s.observed = append(s.observed, count)
}

var march15 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestUseCase_Execute(t *testing.T) {
	withBreak := domain.OpenHours(domain.SourceRegular, 540, 1080, &domain.BreakWindow{Start: 720, End: 780})

	t.Run("open day without designer", func(t *testing.T) {
		repo := &mockReservationRepo{}
		counter := &slotCounter{}
		uc := NewUseCase(repo, fixedHours{hours: withBreak}, counter, logger.Nop(), 30, 60)

		resp, err := uc.Execute(context.Background(), &Request{Date: march15})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 16)
		assert.Equal(t, 30, resp.StepMinutes)
		for _, s := range resp.Slots {
			assert.True(t, s.IsFree())
			assert.NotEqual(t, types.TimeString("12:00"), s.StartTime)
			assert.NotEqual(t, types.TimeString("12:30"), s.StartTime)
		}
		assert.Equal(t, []int{16}, counter.observed)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("designer reservations mark slots", func(t *testing.T) {
		repo := &mockReservationRepo{}
		uc := NewUseCase(repo, fixedHours{hours: domain.OpenHours(domain.SourceRegular, 540, 1080, nil)}, &slotCounter{}, logger.Nop(), 30, 60)

		repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ReservationFilter) bool {
			return f.ActiveOnly && *f.DesignerName == "Kim" && types.SameDate(*f.StartDate, march15)
		})).Return([]domain.Reservation{
			{ID: 7, DesignerName: "Kim", Date: march15, Time: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		}, nil)

		resp, err := uc.Execute(context.Background(), &Request{Date: march15, DesignerName: ptr.Ptr("Kim"), DurationMinutes: 30})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 18)

		taken := map[types.TimeString]bool{}
		for _, s := range resp.Slots {
			if !s.Available {
				taken[s.StartTime] = true
				assert.Equal(t, []int64{7}, s.TakenBy)
			}
		}
		assert.Equal(t, map[types.TimeString]bool{"10:00": true, "10:30": true}, taken)
	})

	t.Run("explicit duration must fit before break and closing", func(t *testing.T) {
		uc := NewUseCase(&mockReservationRepo{}, fixedHours{hours: withBreak}, &slotCounter{}, logger.Nop(), 30, 60)

		resp, err := uc.Execute(context.Background(), &Request{Date: march15, DurationMinutes: 60})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 16)

		var blocked []types.TimeString
		for _, s := range resp.Slots {
			if !s.Available {
				blocked = append(blocked, s.StartTime)
				assert.Empty(t, s.TakenBy)
			}
		}
		assert.Equal(t, []types.TimeString{"11:30", "17:30"}, blocked)
	})

	t.Run("closed day", func(t *testing.T) {
		repo := &mockReservationRepo{}
		uc := NewUseCase(repo, fixedHours{hours: domain.Closed(domain.SourceHoliday, "Christmas")}, &slotCounter{}, logger.Nop(), 30, 60)

		resp, err := uc.Execute(context.Background(), &Request{Date: march15, DesignerName: ptr.Ptr("Kim")})
		require.NoError(t, err)
		assert.NotNil(t, resp.Slots)
		assert.Empty(t, resp.Slots)
		assert.False(t, resp.Hours.Open)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("custom step", func(t *testing.T) {
		uc := NewUseCase(&mockReservationRepo{}, fixedHours{hours: domain.OpenHours(domain.SourceRegular, 540, 1080, nil)}, &slotCounter{}, logger.Nop(), 0, 0)

		resp, err := uc.Execute(context.Background(), &Request{Date: march15, StepMinutes: 60})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 9)
	})

	t.Run("validation", func(t *testing.T) {
		uc := NewUseCase(&mockReservationRepo{}, fixedHours{}, &slotCounter{}, logger.Nop(), 30, 60)

		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{Date: march15, StepMinutes: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{Date: march15, DesignerName: ptr.Ptr("")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
