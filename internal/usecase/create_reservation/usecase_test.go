package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/logger"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, reservation)
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

type countingCache struct {
	invalidated int
}

func (c *countingCache) Invalidate(context.Context) {
	c.invalidated++
}

type noopMetrics struct{}

func (noopMetrics) IncConflict(string, string) {}

type passthroughTx struct {
	calls int
}

func (p *passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var march15 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func newUseCase(repo *mockReservationRepo, hours domain.EffectiveHours, cache *countingCache) *UseCase {
	uc := NewUseCase(repo, fixedHours{hours: hours}, cache, noopMetrics{}, &passthroughTx{}, logger.Nop(), 60)
	uc.timeProvider = fixedClock{now: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func request(at types.TimeString) *Request {
	return &Request{
		CustomerName: "Lee",
		DesignerName: "Kim",
		Date:         march15,
		Time:         at,
		Service:      "cut",
		Actor:        "admin",
	}
}

func openDay() domain.EffectiveHours {
	return domain.OpenHours(domain.SourceRegular, 540, 1080, &domain.BreakWindow{Start: 720, End: 780})
}

func TestUseCase_Execute_Created(t *testing.T) {
	repo := &mockReservationRepo{}
	cache := &countingCache{}
	uc := newUseCase(repo, openDay(), cache)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ReservationFilter) bool {
		return f.ActiveOnly && *f.DesignerName == "Kim"
	})).Return([]domain.Reservation{}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.StatusPending && r.DurationMinutes == 60 && *r.StatusUpdatedBy == "admin"
	})).Return(&domain.Reservation{ID: 10, DesignerName: "Kim", Date: march15, Time: "10:00", DurationMinutes: 60, Status: domain.StatusPending}, nil)

	resp, err := uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.Reservation.ID)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, 1, cache.invalidated)
}

func TestUseCase_Execute_ConflictRefused(t *testing.T) {
	repo := &mockReservationRepo{}
	cache := &countingCache{}
	uc := newUseCase(repo, openDay(), cache)

	repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{
		{ID: 1, DesignerName: "Kim", Date: march15, Time: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}, nil)

	_, err := uc.Execute(context.Background(), request("10:30"))

	var ce *domain.ConflictsError
	require.True(t, errors.As(err, &ce))
	require.Len(t, ce.Conflicts, 1)
	assert.Equal(t, domain.ConflictTimeOverlap, ce.Conflicts[0].Type)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 0, cache.invalidated)
}

func TestUseCase_Execute_ForceSavesWithConflicts(t *testing.T) {
	repo := &mockReservationRepo{}
	uc := newUseCase(repo, openDay(), &countingCache{})

	repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{
		{ID: 1, DesignerName: "Kim", Date: march15, Time: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Reservation{ID: 2}, nil)

	req := request("10:00")
	req.Force = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, domain.ConflictDoubleBooking, resp.Conflicts[0].Type)
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	repo := &mockReservationRepo{}
	uc := newUseCase(repo, domain.Closed(domain.SourceHoliday, "Christmas"), &countingCache{})

	repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{}, nil)

	_, err := uc.Execute(context.Background(), request("10:00"))

	var ce *domain.ConflictsError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.ConflictDesignerUnavailable, ce.Conflicts[0].Type)
	assert.ErrorIs(t, err, domain.ErrConflictsDetected)
}

func TestUseCase_Execute_CompletedDoesNotConflict(t *testing.T) {
	repo := &mockReservationRepo{}
	uc := newUseCase(repo, openDay(), &countingCache{})

	repo.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{
		{ID: 1, DesignerName: "Kim", Date: march15, Time: "10:00", DurationMinutes: 60, Status: domain.StatusCompleted},
	}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Reservation{ID: 2}, nil)

	resp, err := uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)
	assert.Empty(t, resp.Conflicts)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newUseCase(&mockReservationRepo{}, openDay(), &countingCache{})

	noActor := request("10:00")
	noActor.Actor = ""
	_, err := uc.Execute(context.Background(), noActor)
	assert.ErrorIs(t, err, ErrActorRequired)

	badTime := request("10:75")
	_, err = uc.Execute(context.Background(), badTime)
	assert.ErrorIs(t, err, ErrInvalidInput)

	noCustomer := request("10:00")
	noCustomer.CustomerName = ""
	_, err = uc.Execute(context.Background(), noCustomer)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
