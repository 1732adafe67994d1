package create_reservation

import (
	"context"
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/conflicts"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	hoursResolver   HoursResolver
	cache           ConflictCache
	metrics         MetricsRecorder
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	defaultDuration int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	hoursResolver HoursResolver,
	cache ConflictCache,
	metrics MetricsRecorder,
	txManager TransactionManager,
	logger Logger,
	defaultDuration int,
) *UseCase {
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultReservationDuration
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		hoursResolver:   hoursResolver,
		cache:           cache,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		defaultDuration: defaultDuration,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции,
// бронирования дизайнера на дату читаются с блокировкой (FOR UPDATE).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: designer=%s, date=%s, time=%s, duration=%d, force=%t, actor=%s",
		req.DesignerName, types.FormatDate(req.Date), req.Time, req.DurationMinutes, req.Force, req.Actor)

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.defaultDuration
	}
	now := uc.timeProvider.Now()

	reservation := &domain.Reservation{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DesignerName:    req.DesignerName,
		Date:            types.DateOnly(req.Date),
		Time:            req.Time,
		DurationMinutes: duration,
		Service:         req.Service,
		Status:          domain.StatusPending,
		StatusUpdatedAt: &now,
		StatusUpdatedBy: ptr.Ptr(req.Actor),
		Notes:           req.Notes,
	}

	// 1. Валидация входных данных
	if err := validateRequest(req, reservation); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	var (
		created  *domain.Reservation
		detected []domain.ConflictRecord
	)

	// 2. Проверка конфликтов и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Итоговые часы работы на дату
		hours, err := uc.hoursResolver.Resolve(txCtx, reservation.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to resolve hours: %v", err)
			return fmt.Errorf("%w: failed to resolve hours: %v", ErrInternal, err)
		}

		// 2.2. Активные бронирования дизайнера на дату с блокировкой
		sameDay, err := uc.reservationRepo.List(txCtx, domain.ReservationFilter{
			StartDate:    &reservation.Date,
			EndDate:      &reservation.Date,
			DesignerName: &reservation.DesignerName,
			ActiveOnly:   true,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		// 2.3. Поиск конфликтов
		detected, err = conflicts.FindConflicts(conflicts.Candidate{
			DesignerName:    reservation.DesignerName,
			Date:            reservation.Date,
			Time:            reservation.Time,
			DurationMinutes: reservation.DurationMinutes,
		}, sameDay, &hours)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		for _, c := range detected {
			uc.metrics.IncConflict(string(c.Type), string(c.Severity))
		}

		if len(detected) > 0 && !req.Force {
			uc.logger.Warn("CreateReservation: %d conflicts for designer=%s on %s, refusing without force",
				len(detected), reservation.DesignerName, types.FormatDate(reservation.Date))
			return &domain.ConflictsError{Conflicts: detected}
		}
		if len(detected) > 0 {
			uc.logger.Warn("CreateReservation: saving despite %d conflicts (force) by actor=%s", len(detected), req.Actor)
		}

		// 2.4. Сохраняем бронирование
		created, err = uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Сбрасываем кэш индекса конфликтов
	uc.cache.Invalidate(ctx)

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)
	return &Response{
		Reservation: *created,
		Conflicts:   detected,
	}, nil
}
