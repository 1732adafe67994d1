package check_conflicts

import (
	"context"
	"errors"
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	reservationRepo "github.com/devbada/sisters-salon-reservation-sub001/internal/infra/storage/reservation"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/conflicts"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// UseCase use case проверки кандидата на конфликты без сохранения
type UseCase struct {
	reservationRepo ReservationRepository
	hoursResolver   HoursResolver
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	hoursResolver HoursResolver,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		hoursResolver:   hoursResolver,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case проверки конфликтов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflicts: designer=%s, date=%s, time=%s, duration=%d",
		req.DesignerName, types.FormatDate(req.Date), req.Time, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}
	date := types.DateOnly(req.Date)

	// 2. Итоговые часы работы на дату
	hours, err := uc.hoursResolver.Resolve(ctx, date)
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to resolve hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve hours: %v", ErrInternal, err)
	}

	// 3. Активные бронирования дизайнера на дату
	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		StartDate:    &date,
		EndDate:      &date,
		DesignerName: &req.DesignerName,
		ActiveOnly:   true,
	})
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 4. Редактируемое бронирование могло быть на другой дате или у другого дизайнера
	if req.ExcludeReservationID != nil && !containsID(reservations, *req.ExcludeReservationID) {
		self, err := uc.reservationRepo.GetByID(ctx, *req.ExcludeReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CheckConflicts: excluded reservation id=%d not found", *req.ExcludeReservationID)
				return nil, ErrReservationNotFound
			}
			uc.logger.Error("CheckConflicts: failed to get reservation id=%d: %v", *req.ExcludeReservationID, err)
			return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		reservations = append(reservations, *self)
	}

	// 5. Поиск конфликтов
	detected, err := conflicts.FindConflicts(conflicts.Candidate{
		DesignerName:         req.DesignerName,
		Date:                 date,
		Time:                 req.Time,
		DurationMinutes:      req.DurationMinutes,
		ExcludeReservationID: req.ExcludeReservationID,
	}, reservations, &hours)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("CheckConflicts: excluded reservation id=%d not found", *req.ExcludeReservationID)
			return nil, fmt.Errorf("%w: %v", ErrReservationNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, c := range detected {
		uc.metrics.IncConflict(string(c.Type), string(c.Severity))
	}

	uc.logger.Info("CheckConflicts: found %d conflicts for designer=%s on %s",
		len(detected), req.DesignerName, types.FormatDate(date))

	return &Response{
		Conflicts: detected,
		HasErrors: domain.HasErrors(detected),
	}, nil
}

func containsID(list []domain.Reservation, id int64) bool {
	for i := range list {
		if list[i].ID == id {
			return true
		}
	}
	return false
}
