package models

import (
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// Request модели

// ListReservationsRequest фильтр списка бронирований
type ListReservationsRequest struct {
	From         *time.Time
	To           *time.Time
	DesignerName *string
	Status       *string
}

// UpdateReservationRequest запрос на редактирование бронирования.
// Все поля опциональны - обновляются только переданные значения.
type UpdateReservationRequest struct {
	CustomerName    *string           `json:"customerName,omitempty"`
	CustomerPhone   *string           `json:"customerPhone,omitempty"`
	DesignerName    *string           `json:"designerName,omitempty"`
	Date            *string           `json:"date,omitempty"` // YYYY-MM-DD
	Time            *types.TimeString `json:"time,omitempty"`
	DurationMinutes *int              `json:"durationMinutes,omitempty"`
	Service         *string           `json:"service,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	Force           bool              `json:"force"` // сохранить несмотря на конфликты
}

// Response модели

// ReservationResponse бронирование
type ReservationResponse struct {
	ID              int64             `json:"id"`
	CustomerName    string            `json:"customerName"`
	CustomerPhone   *string           `json:"customerPhone,omitempty"`
	DesignerName    string            `json:"designerName"`
	Date            string            `json:"date"`
	Time            types.TimeString  `json:"time"`
	EndTime         string            `json:"endTime,omitempty"`
	DurationMinutes int               `json:"durationMinutes"`
	Service         string            `json:"service"`
	Status          string            `json:"status"`
	StatusUpdatedAt *time.Time        `json:"statusUpdatedAt,omitempty"`
	StatusUpdatedBy *string           `json:"statusUpdatedBy,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	History         []HistoryResponse `json:"history,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// HistoryResponse запись истории статусов
type HistoryResponse struct {
	ID        int64     `json:"id"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
	Reason    *string   `json:"reason,omitempty"`
}

// HistoryListResponse история статусов бронирования
type HistoryListResponse struct {
	ReservationID int64             `json:"reservationId"`
	History       []HistoryResponse `json:"history"`
}

// ConflictResponse найденный конфликт
type ConflictResponse struct {
	Date           string  `json:"date"`
	Type           string  `json:"type"`
	ReservationIDs []int64 `json:"reservationIds"`
	DesignerName   string  `json:"designerName"`
	Message        string  `json:"message"`
	Severity       string  `json:"severity"`
}

// UpdateReservationResponse результат редактирования; Conflicts содержит конфликты,
// сохраненные с флагом force
type UpdateReservationResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Conflicts   []ConflictResponse  `json:"conflicts"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		DesignerName:    r.DesignerName,
		Date:            types.FormatDate(r.Date),
		Time:            r.Time,
		DurationMinutes: r.DurationMinutes,
		Service:         r.Service,
		Status:          string(r.Status),
		StatusUpdatedAt: r.StatusUpdatedAt,
		StatusUpdatedBy: r.StatusUpdatedBy,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if end, err := r.EndTime(); err == nil {
		resp.EndTime = end.String()
	}
	if len(r.History) > 0 {
		resp.History = FromDomainHistory(r.History)
	}
	return resp
}

// FromDomainReservations конвертирует список domain моделей в DTO
func FromDomainReservations(list []domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for i := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(&list[i]))
	}
	return resp
}

// FromDomainHistory конвертирует историю статусов в DTO
func FromDomainHistory(history []domain.StatusHistory) []HistoryResponse {
	result := make([]HistoryResponse, 0, len(history))
	for _, h := range history {
		result = append(result, HistoryResponse{
			ID:        h.ID,
			OldStatus: string(h.OldStatus),
			NewStatus: string(h.NewStatus),
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
			Reason:    h.Reason,
		})
	}
	return result
}

// FromDomainConflicts конвертирует конфликты в DTO
func FromDomainConflicts(records []domain.ConflictRecord) []ConflictResponse {
	result := make([]ConflictResponse, 0, len(records))
	for _, c := range records {
		ids := c.ReservationIDs
		if ids == nil {
			ids = []int64{}
		}
		result = append(result, ConflictResponse{
			Date:           types.FormatDate(c.Date),
			Type:           string(c.Type),
			ReservationIDs: ids,
			DesignerName:   c.DesignerName,
			Message:        c.Message,
			Severity:       string(c.Severity),
		})
	}
	return result
}
