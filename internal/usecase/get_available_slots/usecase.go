package get_available_slots

import (
	"context"
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/slots"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// UseCase use case для получения слотов для записи на дату
type UseCase struct {
	reservationRepo ReservationRepository
	hoursResolver   HoursResolver
	metrics         MetricsRecorder
	logger          Logger
	defaultStep     int
	defaultDuration int
}

// NewUseCase создает новый экземпляр use case.
// defaultStep и defaultDuration берутся из секции [schedule] конфигурации.
func NewUseCase(
	reservationRepo ReservationRepository,
	hoursResolver HoursResolver,
	metrics MetricsRecorder,
	logger Logger,
	defaultStep int,
	defaultDuration int,
) *UseCase {
	if defaultStep <= 0 {
		defaultStep = domain.DefaultSlotStepMinutes
	}
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultReservationDuration
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		hoursResolver:   hoursResolver,
		metrics:         metrics,
		logger:          logger,
		defaultStep:     defaultStep,
		defaultDuration: defaultDuration,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, designer=%s, duration=%d, step=%d",
		types.FormatDate(req.Date), ptr.Deref(req.DesignerName), req.DurationMinutes, req.StepMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	step := req.StepMinutes
	if step == 0 {
		step = uc.defaultStep
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.defaultDuration
	}
	date := types.DateOnly(req.Date)

	// 2. Итоговые часы работы на дату
	hours, err := uc.hoursResolver.Resolve(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve hours: %v", ErrInternal, err)
	}

	// 3. Сетка слотов (пустая, если салон закрыт)
	grid := slots.Generate(hours, step)

	// 4. Занятость дизайнера
	var reservations []domain.Reservation
	if req.DesignerName != nil && len(grid) > 0 {
		reservations, err = uc.reservationRepo.List(ctx, domain.ReservationFilter{
			StartDate:    &date,
			EndDate:      &date,
			DesignerName: req.DesignerName,
			ActiveOnly:   true,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list reservations: %v", err)
			return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}
	}

	result := slots.MarkOccupied(grid, duration, ptr.Deref(req.DesignerName), reservations)

	// 5. Явно заданная длительность должна уместиться до перерыва и до закрытия
	if req.DurationMinutes > 0 {
		for i := range result {
			if !slots.FitsDuration(hours, result[i].StartTime, req.DurationMinutes) {
				result[i].Available = false
			}
		}
	}
	uc.metrics.ObserveSlots(len(result))

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s (source=%s, open=%t)",
		len(result), types.FormatDate(date), hours.Source, hours.Open)

	return &Response{
		Date:         date,
		Hours:        hours,
		DesignerName: req.DesignerName,
		StepMinutes:  step,
		Slots:        result,
	}, nil
}
