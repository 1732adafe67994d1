package create_reservation

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/middleware"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	createReservation "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingAdminID     = "отсутствует ID администратора"
	msgInvalidData        = "некорректные данные бронирования"
	msgConflicts          = "бронирование пересекается с другими записями или часами работы"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
// Без force при конфликтах возвращается 409 со списком конфликтов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictsErr *domain.ConflictsError
		switch {
		case errors.As(err, &conflictsErr):
			h.logger.Warn("POST /reservations - Conflicts detected: designer=%s, date=%s, time=%s, count=%d",
				req.DesignerName, req.Date, req.Time, len(conflictsErr.Conflicts))
			handlers.RespondConflicts(w, msgConflicts, conflictsErr.Conflicts)

		case errors.Is(err, createReservation.ErrActorRequired):
			handlers.RespondUnauthorized(w, msgMissingAdminID)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: designer=%s, date=%s, error=%v",
				req.DesignerName, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: id=%d, designer=%s, date=%s, forced_conflicts=%d, actor=%s",
		result.Reservation.ID, result.Reservation.DesignerName, response.Reservation.Date, len(result.Conflicts), actor)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
