package create_reservation

import (
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
	createReservation "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/create_reservation"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerName    string  `json:"customerName"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	DesignerName    string  `json:"designerName"`
	Date            string  `json:"date"` // "2024-03-15"
	Time            string  `json:"time"` // "10:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Service         string  `json:"service"`
	Notes           *string `json:"notes,omitempty"`
	Force           bool    `json:"force"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	Reservation *models.ReservationResponse `json:"reservation"`
	Conflicts   []models.ConflictResponse   `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateReservationRequest) ToUseCaseRequest(actor string) (*createReservation.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		DesignerName:    r.DesignerName,
		Date:            date,
		Time:            start,
		DurationMinutes: r.DurationMinutes,
		Service:         r.Service,
		Notes:           r.Notes,
		Force:           r.Force,
		Actor:           actor,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		Reservation: models.FromDomainReservation(&resp.Reservation),
		Conflicts:   models.FromDomainConflicts(resp.Conflicts),
	}
}
