package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	reservationRepo "github.com/devbada/sisters-salon-reservation-sub001/internal/infra/storage/reservation"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/conflicts"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	hoursResolver   HoursResolver
	cache           ConflictCache
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	hoursResolver HoursResolver,
	cache ConflictCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		hoursResolver:   hoursResolver,
		cache:           cache,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID вместе с историей статусов
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.get(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	history, err := s.reservationRepo.GetHistory(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get history for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - history error: %v", ErrInternal, err)
	}
	reservation.History = history

	return models.FromDomainReservation(reservation), nil
}

// List получает бронирования по фильтру
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	filter := domain.ReservationFilter{
		StartDate:    req.From,
		EndDate:      req.To,
		DesignerName: req.DesignerName,
	}

	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}
	if req.Status != nil {
		status := domain.ReservationStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(list))
	return models.FromDomainReservations(list), nil
}

// Update редактирует бронирование.
// Активное бронирование перед сохранением проверяется на конфликты (кроме конфликта с самим собой);
// при найденных конфликтах без флага Force возвращается *domain.ConflictsError.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateReservationRequest) (*models.UpdateReservationResponse, error) {
	s.logger.Info("Update: updating reservation id=%d (force=%t)", id, req.Force)

	var (
		updated  *domain.Reservation
		detected []domain.ConflictRecord
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.get(txCtx, id, "Update")
		if err != nil {
			return err
		}

		next := *current
		if err := applyChanges(&next, req); err != nil {
			s.logger.Warn("Update: invalid changes for reservation id=%d: %v", id, err)
			return err
		}

		if next.IsActive() {
			detected, err = s.detect(txCtx, current, &next)
			if err != nil {
				return err
			}
			if len(detected) > 0 && !req.Force {
				s.logger.Warn("Update: reservation id=%d has %d conflicts", id, len(detected))
				return &domain.ConflictsError{Conflicts: detected}
			}
		}

		if err := s.reservationRepo.Update(txCtx, &next); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("Update: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("Update: successfully updated reservation id=%d", id)
	return &models.UpdateReservationResponse{
		Reservation: *models.FromDomainReservation(updated),
		Conflicts:   models.FromDomainConflicts(detected),
	}, nil
}

// Delete удаляет бронирование (исправление ошибочных данных; история удаляется каскадно)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting reservation id=%d", id)

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.cache.Invalidate(ctx)
	return nil
}

// GetHistory возвращает историю статусов бронирования
func (s *Service) GetHistory(ctx context.Context, id int64) (*models.HistoryListResponse, error) {
	if _, err := s.get(ctx, id, "GetHistory"); err != nil {
		return nil, err
	}

	history, err := s.reservationRepo.GetHistory(ctx, id)
	if err != nil {
		s.logger.Error("GetHistory: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	return &models.HistoryListResponse{
		ReservationID: id,
		History:       models.FromDomainHistory(history),
	}, nil
}

func (s *Service) get(ctx context.Context, id int64, op string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// detect ищет конфликты отредактированного бронирования на его новой дате
func (s *Service) detect(ctx context.Context, current, next *domain.Reservation) ([]domain.ConflictRecord, error) {
	hours, err := s.hoursResolver.Resolve(ctx, next.Date)
	if err != nil {
		s.logger.Error("Update: failed to resolve hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve hours: %v", ErrInternal, err)
	}

	day := types.DateOnly(next.Date)
	sameDay, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		StartDate:    &day,
		EndDate:      &day,
		DesignerName: ptr.Ptr(next.DesignerName),
		ActiveOnly:   true,
	})
	if err != nil {
		s.logger.Error("Update: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// при переносе на другую дату или дизайнера текущей записи нет в выборке
	if !containsID(sameDay, current.ID) {
		sameDay = append(sameDay, *current)
	}

	detected, err := conflicts.FindConflicts(conflicts.Candidate{
		DesignerName:         next.DesignerName,
		Date:                 next.Date,
		Time:                 next.Time,
		DurationMinutes:      next.DurationMinutes,
		ExcludeReservationID: ptr.Ptr(current.ID),
	}, sameDay, &hours)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return detected, nil
}

func applyChanges(r *domain.Reservation, req *models.UpdateReservationRequest) error {
	if req.CustomerName != nil {
		r.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		r.CustomerPhone = req.CustomerPhone
	}
	if req.DesignerName != nil {
		r.DesignerName = *req.DesignerName
	}
	if req.Date != nil {
		date, err := types.ParseDate(*req.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		r.Date = date
	}
	if req.Time != nil {
		r.Time = *req.Time
	}
	if req.DurationMinutes != nil {
		r.DurationMinutes = *req.DurationMinutes
	}
	if req.Service != nil {
		r.Service = *req.Service
	}
	if req.Notes != nil {
		r.Notes = req.Notes
	}

	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func containsID(list []domain.Reservation, id int64) bool {
	for i := range list {
		if list[i].ID == id {
			return true
		}
	}
	return false
}
