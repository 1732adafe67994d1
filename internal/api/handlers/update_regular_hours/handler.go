package update_regular_hours

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/middleware"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные расписания"
	msgDuplicateWeekday   = "день недели указан несколько раз"
	msgEmptyHours         = "список дней пуст"
)

type Handler struct {
	service HoursService
	logger  Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/business-hours/regular
// Массовое обновление: при первой ошибке валидации ничего не сохраняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	var req models.UpdateRegularHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /business-hours/regular - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.Hours) == 0 {
		h.logger.Warn("PUT /business-hours/regular - Empty hours list: actor=%s", actor)
		handlers.RespondBadRequest(w, msgEmptyHours)
		return
	}

	result, err := h.service.UpdateRegularHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, businesshours.ErrDuplicateWeekday):
			h.logger.Warn("PUT /business-hours/regular - Duplicate weekday: %v", err)
			handlers.RespondBadRequest(w, msgDuplicateWeekday)

		case errors.Is(err, businesshours.ErrInvalidInput):
			h.logger.Warn("PUT /business-hours/regular - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /business-hours/regular - Failed to update regular hours: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /business-hours/regular - Regular hours updated: days=%d, actor=%s", len(req.Hours), actor)
	handlers.RespondJSON(w, http.StatusOK, result)
}
