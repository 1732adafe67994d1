package update_reservation

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/middleware"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidData          = "некорректные данные бронирования"
	msgNotFound             = "бронирование не найдено"
	msgConflicts            = "изменения приводят к конфликтам с другими записями или часами работы"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{id}
// Обновляются только переданные поля; статус меняется через PATCH /status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		var conflictsErr *domain.ConflictsError
		switch {
		case errors.As(err, &conflictsErr):
			h.logger.Warn("PUT /reservations/{id} - Conflicts detected: id=%d, count=%d", id, len(conflictsErr.Conflicts))
			handlers.RespondConflicts(w, msgConflicts, conflictsErr.Conflicts)

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid data: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: id=%d, forced_conflicts=%d, actor=%s",
		id, len(result.Conflicts), actor)
	handlers.RespondJSON(w, http.StatusOK, result)
}
