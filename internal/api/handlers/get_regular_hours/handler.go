package get_regular_hours

import (
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
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

// Handle GET /api/v1/business-hours/regular
// Всегда возвращает 7 дней; дни без записи считаются выходными
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetRegularHours(r.Context())
	if err != nil {
		h.logger.Error("GET /business-hours/regular - Failed to get regular hours: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
