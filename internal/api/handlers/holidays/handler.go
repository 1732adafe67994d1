package holidays

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/middleware"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours/models"
)

const (
	msgInvalidID          = "некорректный ID праздника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные праздника"
	msgNotFound           = "праздник не найден"
)

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/holidays
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListHolidays(r.Context())
	if err != nil {
		h.logger.Error("GET /holidays - Failed to list holidays: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/holidays
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateHoliday(r.Context(), &req)
	if err != nil {
		if errors.Is(err, businesshours.ErrInvalidInput) {
			h.logger.Warn("POST /holidays - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("POST /holidays - Failed to create holiday: date=%s, error=%v", req.Date, err)
		handlers.RespondInternalError(w)
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	h.logger.Info("POST /holidays - Holiday created: id=%d, date=%s, recurring=%t, actor=%s",
		result.ID, result.Date, result.IsRecurring, actor)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/v1/holidays/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /holidays/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteHoliday(r.Context(), id); err != nil {
		if errors.Is(err, businesshours.ErrHolidayNotFound) {
			h.logger.Warn("DELETE /holidays/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /holidays/{id} - Failed to delete: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	h.logger.Info("DELETE /holidays/{id} - Holiday deleted: id=%d, actor=%s", id, actor)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
