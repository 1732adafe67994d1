package delete_reservation

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/middleware"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
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

// Handle DELETE /api/v1/reservations/{id}
// Удаление для исправления ошибочных записей; обычная отмена - PATCH /status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /reservations/{id} - Failed to delete reservation: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	h.logger.Info("DELETE /reservations/{id} - Reservation deleted: id=%d, actor=%s", id, actor)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
