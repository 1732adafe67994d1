package check_conflicts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	reservationRepo "github.com/devbada/sisters-salon-reservation-sub001/internal/infra/storage/reservation"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/logger"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
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

type conflictCounter struct {
	byType map[string]int
}

func (c *conflictCounter) IncConflict(conflictType, _ string) {
	if c.byType == nil {
		c.byType = make(map[string]int)
	}
	c.byType[conflictType]++
}

var march15 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func openDay() fixedHours {
	return fixedHours{hours: domain.OpenHours(domain.SourceRegular, 540, 1080, &domain.BreakWindow{Start: 720, End: 780})}
}

func kim(id int64, at types.TimeString, status domain.ReservationStatus) domain.Reservation {
	return domain.Reservation{ID: id, DesignerName: "Kim", Date: march15, Time: at, DurationMinutes: 60, Status: status}
}

func TestUseCase_Execute_Overlap(t *testing.T) {
	repo := &mockReservationRepo{}
	counter := &conflictCounter{}
	uc := NewUseCase(repo, openDay(), counter, logger.Nop())

	repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{
		kim(1, "10:00", domain.StatusConfirmed),
		kim(2, "15:00", domain.StatusCompleted),
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{DesignerName: "Kim", Date: march15, Time: "10:30", DurationMinutes: 60})
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictTimeOverlap, resp.Conflicts[0].Type)
	assert.False(t, resp.HasErrors)
	assert.Equal(t, 1, counter.byType["time_overlap"])
}

func TestUseCase_Execute_DoubleBookingAndBreak(t *testing.T) {
	repo := &mockReservationRepo{}
	uc := NewUseCase(repo, openDay(), &conflictCounter{}, logger.Nop())

	repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{
		kim(1, "11:30", domain.StatusPending),
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{DesignerName: "Kim", Date: march15, Time: "11:30", DurationMinutes: 60})
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 2)
	assert.True(t, resp.HasErrors)

	seen := map[domain.ConflictType]bool{}
	for _, c := range resp.Conflicts {
		seen[c.Type] = true
	}
	assert.True(t, seen[domain.ConflictDoubleBooking])
	assert.True(t, seen[domain.ConflictDesignerUnavailable])
}

func TestUseCase_Execute_ExcludeSelf(t *testing.T) {
	t.Run("same day", func(t *testing.T) {
		repo := &mockReservationRepo{}
		uc := NewUseCase(repo, openDay(), &conflictCounter{}, logger.Nop())

		repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{kim(1, "10:00", domain.StatusConfirmed)}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			DesignerName: "Kim", Date: march15, Time: "10:30", DurationMinutes: 60, ExcludeReservationID: ptr.Ptr(int64(1)),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Conflicts)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("moved from another day", func(t *testing.T) {
		repo := &mockReservationRepo{}
		uc := NewUseCase(repo, openDay(), &conflictCounter{}, logger.Nop())

		moved := kim(5, "10:00", domain.StatusConfirmed)
		moved.Date = march15.AddDate(0, 0, -1)
		repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{kim(1, "10:00", domain.StatusConfirmed)}, nil)
		repo.On("GetByID", mock.Anything, int64(5)).Return(&moved, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			DesignerName: "Kim", Date: march15, Time: "10:00", DurationMinutes: 60, ExcludeReservationID: ptr.Ptr(int64(5)),
		})
		require.NoError(t, err)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, []int64{5, 1}, resp.Conflicts[0].ReservationIDs)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		repo := &mockReservationRepo{}
		uc := NewUseCase(repo, openDay(), &conflictCounter{}, logger.Nop())

		repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{}, nil)
		repo.On("GetByID", mock.Anything, int64(9)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := uc.Execute(context.Background(), &Request{
			DesignerName: "Kim", Date: march15, Time: "10:00", DurationMinutes: 60, ExcludeReservationID: ptr.Ptr(int64(9)),
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := NewUseCase(&mockReservationRepo{}, openDay(), &conflictCounter{}, logger.Nop())

	tests := []struct {
		name string
		req  Request
	}{
		{name: "no designer", req: Request{Date: march15, Time: "10:00", DurationMinutes: 60}},
		{name: "no date", req: Request{DesignerName: "Kim", Time: "10:00", DurationMinutes: 60}},
		{name: "bad time", req: Request{DesignerName: "Kim", Date: march15, Time: "10h", DurationMinutes: 60}},
		{name: "zero duration", req: Request{DesignerName: "Kim", Date: march15, Time: "10:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
