package change_reservation_status

import (
	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
	changeStatus "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/change_reservation_status"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status         string  `json:"status"`
	Reason         *string `json:"reason,omitempty"`
	ExpectedStatus *string `json:"expectedStatus,omitempty"`
	Force          bool    `json:"force"`
}

// ChangeStatusResponse HTTP response model
type ChangeStatusResponse struct {
	Reservation        *models.ReservationResponse `json:"reservation"`
	Record             models.HistoryResponse      `json:"record"`
	AllowedTransitions []string                    `json:"allowedTransitions"`
	Conflicts          []models.ConflictResponse   `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ChangeStatusRequest) ToUseCaseRequest(id int64, actor string) *changeStatus.Request {
	return &changeStatus.Request{
		ReservationID:  id,
		To:             r.Status,
		Actor:          actor,
		Reason:         r.Reason,
		ExpectedStatus: r.ExpectedStatus,
		Force:          r.Force,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response) *ChangeStatusResponse {
	allowed := make([]string, 0, len(resp.AllowedNext))
	for _, s := range resp.AllowedNext {
		allowed = append(allowed, string(s))
	}

	return &ChangeStatusResponse{
		Reservation:        models.FromDomainReservation(&resp.Reservation),
		Record:             models.FromDomainHistory([]domain.StatusHistory{resp.Record})[0],
		AllowedTransitions: allowed,
		Conflicts:          models.FromDomainConflicts(resp.Conflicts),
	}
}
