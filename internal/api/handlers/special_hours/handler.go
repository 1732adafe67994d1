package special_hours

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/middleware"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours/models"
)

const (
	msgInvalidID          = "некорректный ID особых часов"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPeriod      = "некорректный период, ожидается from и to в формате YYYY-MM-DD"
	msgInvalidData        = "некорректные данные особых часов"
	msgAlreadyExists      = "особые часы на эту дату уже заданы"
	msgNotFound           = "особые часы не найдены"
)

// Handler особые часы работы (закрытие или измененное время на конкретную дату)
type Handler struct {
	service SpecialHoursService
	logger  Logger
}

func NewHandler(service SpecialHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/special-hours?from=&to=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /special-hours - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /special-hours - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.ListSpecialHours(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, businesshours.ErrInvalidInput) {
			h.logger.Warn("GET /special-hours - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /special-hours - Failed to list special hours: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/special-hours
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var req models.CreateSpecialHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /special-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSpecialHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrSpecialHoursExists):
			h.logger.Warn("POST /special-hours - Already exists: date=%s", req.Date)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, businesshours.ErrInvalidInput):
			h.logger.Warn("POST /special-hours - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /special-hours - Failed to create special hours: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /special-hours - Special hours created: id=%d, date=%s, type=%s, actor=%s",
		result.ID, result.Date, result.Type, actor)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/v1/special-hours/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /special-hours/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteSpecialHours(r.Context(), id); err != nil {
		if errors.Is(err, businesshours.ErrSpecialHoursNotFound) {
			h.logger.Warn("DELETE /special-hours/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /special-hours/{id} - Failed to delete: id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	h.logger.Info("DELETE /special-hours/{id} - Special hours deleted: id=%d, actor=%s", id, actor)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
