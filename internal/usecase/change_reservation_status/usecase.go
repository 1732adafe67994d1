package change_reservation_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	reservationRepo "github.com/devbada/sisters-salon-reservation-sub001/internal/infra/storage/reservation"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/conflicts"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/status"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	hoursResolver   HoursResolver
	machine         StatusMachine
	cache           ConflictCache
	metrics         MetricsRecorder
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	hoursResolver HoursResolver,
	machine StatusMachine,
	cache ConflictCache,
	metrics MetricsRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		hoursResolver:   hoursResolver,
		machine:         machine,
		cache:           cache,
		metrics:         metrics,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет смену статуса.
// Статус обновляется условно (compare-and-swap по старому статусу), запись истории
// добавляется в той же транзакции. Восстановление отмененной записи проверяется на конфликты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeReservationStatus: reservation id=%d, to=%s, actor=%s", req.ReservationID, req.To, req.Actor)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeReservationStatus: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	// 2. Чтение, переход и запись в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("ChangeReservationStatus: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("ChangeReservationStatus: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.1. Клиент видел другой статус
		if req.ExpectedStatus != nil && domain.ReservationStatus(*req.ExpectedStatus) != current.Status {
			uc.logger.Warn("ChangeReservationStatus: reservation id=%d expected status %s, actual %s",
				req.ReservationID, *req.ExpectedStatus, current.Status)
			return fmt.Errorf("%w: expected %s, actual %s", ErrStatusConflict, *req.ExpectedStatus, current.Status)
		}

		// 2.2. Проверка перехода по таблице
		updated, record, err := uc.machine.Transition(*current, status.Request{
			To:     domain.ReservationStatus(req.To),
			Actor:  req.Actor,
			Reason: req.Reason,
		})
		if err != nil {
			uc.logger.Warn("ChangeReservationStatus: transition refused for reservation id=%d: %v", req.ReservationID, err)
			return err
		}

		// 2.3. Восстановленная запись снова занимает время дизайнера
		var detected []domain.ConflictRecord
		if !current.IsActive() && updated.IsActive() {
			detected, err = uc.detect(txCtx, &updated)
			if err != nil {
				return err
			}
			if len(detected) > 0 && !req.Force {
				uc.logger.Warn("ChangeReservationStatus: reactivating reservation id=%d has %d conflicts",
					req.ReservationID, len(detected))
				return &domain.ConflictsError{Conflicts: detected}
			}
		}

		// 2.4. Условное обновление статуса
		err = uc.reservationRepo.UpdateStatus(txCtx, current.ID, current.Status, updated.Status,
			record.ChangedBy, record.ChangedAt)
		if err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrStatusChanged):
				uc.logger.Warn("ChangeReservationStatus: reservation id=%d changed concurrently", req.ReservationID)
				return fmt.Errorf("%w: %v", ErrStatusConflict, err)
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrReservationNotFound
			}
			uc.logger.Error("ChangeReservationStatus: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		// 2.5. Запись истории
		saved, err := uc.reservationRepo.AddHistory(txCtx, &record)
		if err != nil {
			uc.logger.Error("ChangeReservationStatus: failed to add history: %v", err)
			return fmt.Errorf("%w: failed to add history: %v", ErrInternal, err)
		}
		updated.History[len(updated.History)-1] = *saved

		resp = &Response{
			Reservation: updated,
			Record:      *saved,
			AllowedNext: uc.machine.AllowedTransitions(updated.Status),
			Conflicts:   detected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Метрики и сброс кэша индекса конфликтов
	uc.metrics.IncTransition(string(resp.Record.OldStatus), string(resp.Record.NewStatus))
	uc.cache.Invalidate(ctx)

	uc.logger.Info("ChangeReservationStatus: reservation id=%d %s -> %s",
		req.ReservationID, resp.Record.OldStatus, resp.Record.NewStatus)
	return resp, nil
}

// detect ищет конфликты восстанавливаемого бронирования
func (uc *UseCase) detect(ctx context.Context, r *domain.Reservation) ([]domain.ConflictRecord, error) {
	hours, err := uc.hoursResolver.Resolve(ctx, r.Date)
	if err != nil {
		uc.logger.Error("ChangeReservationStatus: failed to resolve hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve hours: %v", ErrInternal, err)
	}

	sameDay, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		StartDate:    &r.Date,
		EndDate:      &r.Date,
		DesignerName: &r.DesignerName,
		ActiveOnly:   true,
	})
	if err != nil {
		uc.logger.Error("ChangeReservationStatus: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}
	// отмененной записи нет среди активных
	sameDay = append(sameDay, *r)

	detected, err := conflicts.FindConflicts(conflicts.Candidate{
		DesignerName:         r.DesignerName,
		Date:                 r.Date,
		Time:                 r.Time,
		DurationMinutes:      r.DurationMinutes,
		ExcludeReservationID: ptr.Ptr(r.ID),
	}, sameDay, &hours)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return detected, nil
}
