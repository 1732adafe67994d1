package get_calendar_conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/conflicts"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// UseCase use case построения индекса конфликтов календаря
type UseCase struct {
	reservationRepo ReservationRepository
	cache           ConflictCache
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	cache ConflictCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Execute возвращает индекс конфликтов за период.
// Индекс всегда строится заново по активным бронированиям; кэш хранит готовый результат
// до следующего изменения бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendarConflicts: from=%s, to=%s", types.FormatDate(req.From), types.FormatDate(req.To))

	// 1. Валидация периода
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendarConflicts: validation failed: %v", err)
		return nil, err
	}
	from, to := types.DateOnly(req.From), types.DateOnly(req.To)

	// 2. Кэш
	index, version, ok := uc.cache.Lookup(ctx, from, to)
	if ok {
		uc.logger.Info("GetCalendarConflicts: served from cache (%d dates)", len(index))
		return newResponse(from, to, index, true), nil
	}

	// 3. Активные бронирования за период
	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		StartDate:  &from,
		EndDate:    &to,
		ActiveOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetCalendarConflicts: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 4. Индекс и сохранение под прочитанной версией
	index = conflicts.BuildIndex(reservations)
	uc.cache.Store(ctx, version, from, to, index)

	uc.logger.Info("GetCalendarConflicts: built index from %d reservations (%d dates with conflicts)",
		len(reservations), len(index))
	return newResponse(from, to, index, false), nil
}

func newResponse(from, to time.Time, index map[string][]domain.ConflictRecord, cached bool) *Response {
	if index == nil {
		index = map[string][]domain.ConflictRecord{}
	}
	return &Response{
		From:      from,
		To:        to,
		Index:     index,
		Conflicts: conflicts.Flatten(index),
		Cached:    cached,
	}
}
