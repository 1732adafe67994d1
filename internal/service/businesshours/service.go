package businesshours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	scheduleRepo "github.com/devbada/sisters-salon-reservation-sub001/internal/infra/storage/schedule"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/hours"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours/models"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

const daysPerWeek = 7

// Service сервис для работы с расписанием салона
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Resolve вычисляет итоговые часы работы на дату по праздникам, особым и недельным часам.
// Используется usecase-ами слотов и конфликтов.
func (s *Service) Resolve(ctx context.Context, date time.Time) (domain.EffectiveHours, error) {
	day := types.DateOnly(date)

	var (
		regular  []domain.RegularHours
		special  []domain.SpecialHours
		holidays []domain.Holiday
	)

	// три выборки читаются из одного снимка; внутри внешней транзакции используется она
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if regular, err = s.scheduleRepo.ListRegularHours(txCtx); err != nil {
			return fmt.Errorf("%w: Resolve - list regular hours: %v", ErrInternal, err)
		}
		if special, err = s.scheduleRepo.ListSpecialHours(txCtx, &day, &day); err != nil {
			return fmt.Errorf("%w: Resolve - list special hours: %v", ErrInternal, err)
		}
		if holidays, err = s.scheduleRepo.ListHolidays(txCtx); err != nil {
			return fmt.Errorf("%w: Resolve - list holidays: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return domain.EffectiveHours{}, err
		}
		return domain.EffectiveHours{}, fmt.Errorf("%w: Resolve - transaction: %v", ErrInternal, err)
	}

	return hours.Resolve(day, regular, special, holidays), nil
}

// GetEffectiveHours возвращает итоговые часы работы на дату
func (s *Service) GetEffectiveHours(ctx context.Context, date time.Time) (*models.EffectiveHoursResponse, error) {
	s.logger.Info("GetEffectiveHours: resolving hours for date=%s", types.FormatDate(date))

	effective, err := s.Resolve(ctx, date)
	if err != nil {
		s.logger.Error("GetEffectiveHours: failed to resolve hours: %v", err)
		return nil, err
	}

	return models.FromEffectiveHours(date, effective), nil
}

// GetRegularHours возвращает недельное расписание; отсутствующие дни считаются выходными
func (s *Service) GetRegularHours(ctx context.Context) (*models.RegularHoursListResponse, error) {
	regular, err := s.scheduleRepo.ListRegularHours(ctx)
	if err != nil {
		s.logger.Error("GetRegularHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetRegularHours - repository error: %v", ErrInternal, err)
	}

	return toWeek(regular), nil
}

// UpdateRegularHours массово обновляет недельное расписание.
// Каждый день проверяется до записи; при первой ошибке ничего не сохраняется.
func (s *Service) UpdateRegularHours(ctx context.Context, req *models.UpdateRegularHoursRequest) (*models.RegularHoursListResponse, error) {
	s.logger.Info("UpdateRegularHours: updating %d weekdays", len(req.Hours))

	if len(req.Hours) == 0 {
		return nil, fmt.Errorf("%w: at least one weekday is required", ErrInvalidInput)
	}

	seen := make(map[int]struct{}, len(req.Hours))
	toSave := make([]domain.RegularHours, 0, len(req.Hours))
	for _, item := range req.Hours {
		h := item.ToDomain()
		if err := h.Validate(); err != nil {
			s.logger.Warn("UpdateRegularHours: validation failed for day=%d: %v", h.DayOfWeek, err)
			return nil, fmt.Errorf("%w: day %d: %v", ErrInvalidInput, h.DayOfWeek, err)
		}
		if _, dup := seen[h.DayOfWeek]; dup {
			s.logger.Warn("UpdateRegularHours: duplicate day=%d", h.DayOfWeek)
			return nil, fmt.Errorf("%w: %w: day %d", ErrInvalidInput, ErrDuplicateWeekday, h.DayOfWeek)
		}
		seen[h.DayOfWeek] = struct{}{}
		toSave = append(toSave, h)
	}

	var saved []domain.RegularHours
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.UpsertRegularHours(txCtx, toSave); err != nil {
			return err
		}
		var err error
		saved, err = s.scheduleRepo.ListRegularHours(txCtx)
		return err
	})
	if err != nil {
		s.logger.Error("UpdateRegularHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateRegularHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRegularHours: successfully updated %d weekdays", len(toSave))
	return toWeek(saved), nil
}

// ListSpecialHours возвращает особые часы работы за период
func (s *Service) ListSpecialHours(ctx context.Context, from, to *time.Time) (*models.SpecialHoursListResponse, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	list, err := s.scheduleRepo.ListSpecialHours(ctx, from, to)
	if err != nil {
		s.logger.Error("ListSpecialHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpecialHours - repository error: %v", ErrInternal, err)
	}

	resp := &models.SpecialHoursListResponse{SpecialHours: make([]models.SpecialHoursResponse, 0, len(list))}
	for i := range list {
		resp.SpecialHours = append(resp.SpecialHours, *models.FromDomainSpecialHours(&list[i]))
	}
	return resp, nil
}

// CreateSpecialHours создает особые часы работы на дату
func (s *Service) CreateSpecialHours(ctx context.Context, req *models.CreateSpecialHoursRequest) (*models.SpecialHoursResponse, error) {
	s.logger.Info("CreateSpecialHours: date=%s, type=%s", req.Date, req.Type)

	date, err := types.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("CreateSpecialHours: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason longer than %d", ErrInvalidInput, domain.MaxReasonLength)
	}

	special := &domain.SpecialHours{
		Date:       date,
		Type:       domain.SpecialHoursType(req.Type),
		OpenTime:   req.OpenTime,
		CloseTime:  req.CloseTime,
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
		Reason:     req.Reason,
	}
	if err := special.Validate(); err != nil {
		s.logger.Warn("CreateSpecialHours: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.scheduleRepo.CreateSpecialHours(ctx, special)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSpecialHoursExists) {
			s.logger.Warn("CreateSpecialHours: special hours for date=%s already exist", req.Date)
			return nil, ErrSpecialHoursExists
		}
		s.logger.Error("CreateSpecialHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSpecialHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSpecialHours: successfully created special hours id=%d", created.ID)
	return models.FromDomainSpecialHours(created), nil
}

// DeleteSpecialHours удаляет особые часы работы
func (s *Service) DeleteSpecialHours(ctx context.Context, id int64) error {
	s.logger.Info("DeleteSpecialHours: deleting special hours id=%d", id)

	if err := s.scheduleRepo.DeleteSpecialHours(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrSpecialHoursNotFound) {
			s.logger.Warn("DeleteSpecialHours: special hours id=%d not found", id)
			return ErrSpecialHoursNotFound
		}
		s.logger.Error("DeleteSpecialHours: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteSpecialHours - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ListHolidays возвращает все праздники
func (s *Service) ListHolidays(ctx context.Context) (*models.HolidayListResponse, error) {
	list, err := s.scheduleRepo.ListHolidays(ctx)
	if err != nil {
		s.logger.Error("ListHolidays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListHolidays - repository error: %v", ErrInternal, err)
	}

	resp := &models.HolidayListResponse{Holidays: make([]models.HolidayResponse, 0, len(list))}
	for i := range list {
		resp.Holidays = append(resp.Holidays, *models.FromDomainHoliday(&list[i]))
	}
	return resp, nil
}

// CreateHoliday создает праздник
func (s *Service) CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("CreateHoliday: date=%s, name=%s, recurring=%t", req.Date, req.Name, req.IsRecurring)

	date, err := types.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("CreateHoliday: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	holiday := &domain.Holiday{
		Date:        date,
		Name:        req.Name,
		IsRecurring: req.IsRecurring,
		IsClosed:    req.IsClosed == nil || *req.IsClosed,
	}
	if err := holiday.Validate(); err != nil {
		s.logger.Warn("CreateHoliday: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.scheduleRepo.CreateHoliday(ctx, holiday)
	if err != nil {
		s.logger.Error("CreateHoliday: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateHoliday: successfully created holiday id=%d", created.ID)
	return models.FromDomainHoliday(created), nil
}

// DeleteHoliday удаляет праздник
func (s *Service) DeleteHoliday(ctx context.Context, id int64) error {
	s.logger.Info("DeleteHoliday: deleting holiday id=%d", id)

	if err := s.scheduleRepo.DeleteHoliday(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrHolidayNotFound) {
			s.logger.Warn("DeleteHoliday: holiday id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("DeleteHoliday: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteHoliday - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ApplySeed записывает начальное расписание, если недельные часы еще не заданы.
// Возвращает false, если расписание уже существует и seed пропущен.
func (s *Service) ApplySeed(ctx context.Context, regular []domain.RegularHours, holidays []domain.Holiday) (bool, error) {
	applied := false
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.scheduleRepo.ListRegularHours(txCtx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}

		if err := s.scheduleRepo.UpsertRegularHours(txCtx, regular); err != nil {
			return err
		}
		for i := range holidays {
			if _, err := s.scheduleRepo.CreateHoliday(txCtx, &holidays[i]); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	if err != nil {
		s.logger.Error("ApplySeed: failed to apply salon seed: %v", err)
		return false, fmt.Errorf("%w: ApplySeed - repository error: %v", ErrInternal, err)
	}

	if applied {
		s.logger.Info("ApplySeed: seeded %d weekdays and %d holidays", len(regular), len(holidays))
	} else {
		s.logger.Info("ApplySeed: regular hours already present, seed skipped")
	}
	return applied, nil
}

// toWeek дополняет расписание до 7 дней; отсутствующие дни закрыты
func toWeek(regular []domain.RegularHours) *models.RegularHoursListResponse {
	byDay := make(map[int]domain.RegularHours, len(regular))
	for _, h := range regular {
		byDay[h.DayOfWeek] = h
	}

	resp := &models.RegularHoursListResponse{Hours: make([]models.RegularHoursItem, 0, daysPerWeek)}
	for day := 0; day < daysPerWeek; day++ {
		h, ok := byDay[day]
		if !ok {
			h = domain.RegularHours{DayOfWeek: day}
		}
		resp.Hours = append(resp.Hours, models.FromDomainRegularHours(h))
	}
	return resp
}
