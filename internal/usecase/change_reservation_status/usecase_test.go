package change_reservation_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	reservationRepo "github.com/devbada/sisters-salon-reservation-sub001/internal/infra/storage/reservation"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/status"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/logger"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
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

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id int64, expected, to domain.ReservationStatus, changedBy string, changedAt time.Time) error {
	return m.Called(ctx, id, expected, to, changedBy, changedAt).Error(0)
}

func (m *mockReservationRepo) AddHistory(ctx context.Context, record *domain.StatusHistory) (*domain.StatusHistory, error) {
	args := m.Called(ctx, record)
	if fn, ok := args.Get(0).(func(*domain.StatusHistory) *domain.StatusHistory); ok {
		return fn(record), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusHistory), args.Error(1)
}

type fixedHours struct {
	hours domain.EffectiveHours
}

func (f fixedHours) Resolve(context.Context, time.Time) (domain.EffectiveHours, error) {
	return f.hours, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type countingCache struct {
	invalidated int
}

func (c *countingCache) Invalidate(context.Context) {
	c.invalidated++
}

type transitionCounter struct {
	transitions []string
}

func (t *transitionCounter) IncTransition(from, to string) {
	t.transitions = append(t.transitions, from+"->"+to)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	march15 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	changed = time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	repo    *mockReservationRepo
	cache   *countingCache
	metrics *transitionCounter
	uc      *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:    &mockReservationRepo{},
		cache:   &countingCache{},
		metrics: &transitionCounter{},
	}
	hours := fixedHours{hours: domain.OpenHours(domain.SourceRegular, 540, 1080, nil)}
	f.uc = NewUseCase(f.repo, hours, status.NewMachine(fixedClock{now: changed}), f.cache, f.metrics, passthroughTx{}, logger.Nop())
	return f
}

func reservation(id int64, st domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		CustomerName:    "Customer",
		DesignerName:    "Kim",
		Date:            march15,
		Time:            "10:00",
		DurationMinutes: 60,
		Service:         "cut",
		Status:          st,
	}
}

func echoHistory(id int64) func(*domain.StatusHistory) *domain.StatusHistory {
	return func(record *domain.StatusHistory) *domain.StatusHistory {
		saved := *record
		saved.ID = id
		return &saved
	}
}

func TestUseCase_Execute_Confirm(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusPending), nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusPending, domain.StatusConfirmed, "admin", changed).Return(nil)
	f.repo.On("AddHistory", mock.Anything, mock.MatchedBy(func(h *domain.StatusHistory) bool {
		return h.OldStatus == domain.StatusPending && h.NewStatus == domain.StatusConfirmed && h.ChangedBy == "admin"
	})).Return(&domain.StatusHistory{
		ID: 10, ReservationID: 1, OldStatus: domain.StatusPending, NewStatus: domain.StatusConfirmed,
		ChangedBy: "admin", ChangedAt: changed,
	}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, To: "confirmed", Actor: "admin"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
	assert.Equal(t, changed, *resp.Reservation.StatusUpdatedAt)
	assert.Equal(t, "admin", *resp.Reservation.StatusUpdatedBy)
	assert.Equal(t, int64(10), resp.Record.ID)
	require.Len(t, resp.Reservation.History, 1)
	assert.Equal(t, int64(10), resp.Reservation.History[0].ID)
	assert.Equal(t, []domain.ReservationStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow}, resp.AllowedNext)
	assert.Equal(t, []string{"pending->confirmed"}, f.metrics.transitions)
	assert.Equal(t, 1, f.cache.invalidated)
	f.repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_InvalidTransition(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusPending), nil)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, To: "completed", Actor: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "AddHistory", mock.Anything, mock.Anything)
	assert.Empty(t, f.metrics.transitions)
	assert.Equal(t, 0, f.cache.invalidated)
}

func TestUseCase_Execute_CancelNeedsReason(t *testing.T) {
	t.Run("without reason", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusConfirmed), nil)

		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, To: "cancelled", Actor: "admin", Reason: ptr.Ptr("  ")})
		assert.ErrorIs(t, err, status.ErrReasonRequired)
		f.repo.AssertNotCalled(t, "AddHistory", mock.Anything, mock.Anything)
	})

	t.Run("with reason", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusConfirmed), nil)
		f.repo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusConfirmed, domain.StatusCancelled, "admin", changed).Return(nil)
		f.repo.On("AddHistory", mock.Anything, mock.Anything).Return(echoHistory(11), nil).Once()

		resp, err := f.uc.Execute(context.Background(), &Request{
			ReservationID: 1, To: "cancelled", Actor: "admin", Reason: ptr.Ptr("customer called"),
		})
		require.NoError(t, err)
		assert.Equal(t, "customer called", *resp.Record.Reason)
		assert.Equal(t, []domain.ReservationStatus{domain.StatusConfirmed}, resp.AllowedNext)
		f.repo.AssertNumberOfCalls(t, "AddHistory", 1)
	})
}

func TestUseCase_Execute_ConcurrentChange(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusPending), nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusPending, domain.StatusConfirmed, "admin", changed).
		Return(reservationRepo.ErrStatusChanged)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, To: "confirmed", Actor: "admin"})
	assert.ErrorIs(t, err, ErrStatusConflict)
	f.repo.AssertNotCalled(t, "AddHistory", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_ExpectedStatusMismatch(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusConfirmed), nil)

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 1, To: "confirmed", Actor: "admin", ExpectedStatus: ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestUseCase_Execute_Reactivate(t *testing.T) {
	other := reservation(2, domain.StatusConfirmed)
	other.Time = "10:30"

	t.Run("conflicting slot is refused", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusCancelled), nil)
		f.repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{*other}, nil)

		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, To: "confirmed", Actor: "admin"})

		var ce *domain.ConflictsError
		require.ErrorAs(t, err, &ce)
		require.Len(t, ce.Conflicts, 1)
		assert.Equal(t, domain.ConflictTimeOverlap, ce.Conflicts[0].Type)
		f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("force restores and reports conflicts", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusCancelled), nil)
		f.repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{*other}, nil)
		f.repo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusCancelled, domain.StatusConfirmed, "admin", changed).Return(nil)
		f.repo.On("AddHistory", mock.Anything, mock.Anything).Return(echoHistory(12), nil)

		resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, To: "confirmed", Actor: "admin", Force: true})
		require.NoError(t, err)
		assert.Len(t, resp.Conflicts, 1)
		assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
	})
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	f := newFixture()
	f.repo.On("GetByID", mock.Anything, int64(9)).Return(nil, reservationRepo.ErrReservationNotFound)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 9, To: "confirmed", Actor: "admin"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "unknown status", req: Request{ReservationID: 1, To: "archived", Actor: "admin"}, want: ErrInvalidInput},
		{name: "bad id", req: Request{ReservationID: 0, To: "confirmed", Actor: "admin"}, want: ErrInvalidInput},
		{name: "bad expected status", req: Request{ReservationID: 1, To: "confirmed", Actor: "admin", ExpectedStatus: ptr.Ptr("x")}, want: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("missing actor", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", mock.Anything, int64(1)).Return(reservation(1, domain.StatusPending), nil)

		_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, To: "confirmed"})
		assert.ErrorIs(t, err, status.ErrActorRequired)
	})
}
