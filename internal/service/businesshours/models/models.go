package models

import (
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// Request модели

// RegularHoursItem часы работы одного дня недели
type RegularHoursItem struct {
	DayOfWeek  int               `json:"dayOfWeek"` // 0=воскресенье .. 6=суббота
	IsOpen     bool              `json:"isOpen"`
	OpenTime   *types.TimeString `json:"openTime,omitempty"`
	CloseTime  *types.TimeString `json:"closeTime,omitempty"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
}

// UpdateRegularHoursRequest массовое обновление недельного расписания.
// Дни, которые не переданы, не изменяются.
type UpdateRegularHoursRequest struct {
	Hours []RegularHoursItem `json:"hours"`
}

// CreateSpecialHoursRequest запрос на создание особых часов работы
type CreateSpecialHoursRequest struct {
	Date       string            `json:"date"` // YYYY-MM-DD
	Type       string            `json:"type"` // closed | modified
	OpenTime   *types.TimeString `json:"openTime,omitempty"`
	CloseTime  *types.TimeString `json:"closeTime,omitempty"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
	Reason     *string           `json:"reason,omitempty"`
}

// CreateHolidayRequest запрос на создание праздника
type CreateHolidayRequest struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Name        string `json:"name"`
	IsRecurring bool   `json:"isRecurring"`
	IsClosed    *bool  `json:"isClosed,omitempty"` // по умолчанию true
}

// Response модели

// RegularHoursListResponse недельное расписание (всегда 7 дней)
type RegularHoursListResponse struct {
	Hours []RegularHoursItem `json:"hours"`
}

// SpecialHoursResponse особые часы работы
type SpecialHoursResponse struct {
	ID         int64             `json:"id"`
	Date       string            `json:"date"`
	Type       string            `json:"type"`
	OpenTime   *types.TimeString `json:"openTime,omitempty"`
	CloseTime  *types.TimeString `json:"closeTime,omitempty"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
	Reason     *string           `json:"reason,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// SpecialHoursListResponse список особых часов
type SpecialHoursListResponse struct {
	SpecialHours []SpecialHoursResponse `json:"specialHours"`
}

// HolidayResponse праздник
type HolidayResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Name        string    `json:"name"`
	IsRecurring bool      `json:"isRecurring"`
	IsClosed    bool      `json:"isClosed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HolidayListResponse список праздников
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// EffectiveHoursResponse итоговые часы работы на дату
type EffectiveHoursResponse struct {
	Date       string            `json:"date"`
	IsOpen     bool              `json:"isOpen"`
	OpenTime   *types.TimeString `json:"openTime,omitempty"`
	CloseTime  *types.TimeString `json:"closeTime,omitempty"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
	Source     string            `json:"source"`
	Reason     string            `json:"reason,omitempty"`
	Notes      []string          `json:"notes,omitempty"`
}

// Методы конвертации

// ToDomain конвертирует элемент запроса в domain модель
func (i RegularHoursItem) ToDomain() domain.RegularHours {
	return domain.RegularHours{
		DayOfWeek:  i.DayOfWeek,
		IsOpen:     i.IsOpen,
		OpenTime:   i.OpenTime,
		CloseTime:  i.CloseTime,
		BreakStart: i.BreakStart,
		BreakEnd:   i.BreakEnd,
	}
}

// FromDomainRegularHours конвертирует domain модель в DTO
func FromDomainRegularHours(h domain.RegularHours) RegularHoursItem {
	return RegularHoursItem{
		DayOfWeek:  h.DayOfWeek,
		IsOpen:     h.IsOpen,
		OpenTime:   h.OpenTime,
		CloseTime:  h.CloseTime,
		BreakStart: h.BreakStart,
		BreakEnd:   h.BreakEnd,
	}
}

// FromDomainSpecialHours конвертирует domain модель в DTO
func FromDomainSpecialHours(s *domain.SpecialHours) *SpecialHoursResponse {
	if s == nil {
		return nil
	}
	return &SpecialHoursResponse{
		ID:         s.ID,
		Date:       types.FormatDate(s.Date),
		Type:       string(s.Type),
		OpenTime:   s.OpenTime,
		CloseTime:  s.CloseTime,
		BreakStart: s.BreakStart,
		BreakEnd:   s.BreakEnd,
		Reason:     s.Reason,
		CreatedAt:  s.CreatedAt,
	}
}

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}
	return &HolidayResponse{
		ID:          h.ID,
		Date:        types.FormatDate(h.Date),
		Name:        h.Name,
		IsRecurring: h.IsRecurring,
		IsClosed:    h.IsClosed,
		CreatedAt:   h.CreatedAt,
	}
}

// FromEffectiveHours конвертирует итоговые часы работы в DTO.
// Минуты переводятся обратно в HH:MM; некорректные значения пропускаются.
func FromEffectiveHours(date time.Time, h domain.EffectiveHours) *EffectiveHoursResponse {
	resp := &EffectiveHoursResponse{
		Date:   types.FormatDate(date),
		IsOpen: h.Open,
		Source: string(h.Source),
		Reason: h.Reason,
		Notes:  h.Notes,
	}
	if !h.Open {
		return resp
	}

	resp.OpenTime = minutesPtr(h.OpenAt)
	resp.CloseTime = minutesPtr(h.CloseAt)
	if h.Break != nil {
		resp.BreakStart = minutesPtr(h.Break.Start)
		resp.BreakEnd = minutesPtr(h.Break.End)
	}
	return resp
}

func minutesPtr(m int) *types.TimeString {
	ts, err := types.FromMinutes(m)
	if err != nil {
		return nil
	}
	return &ts
}
