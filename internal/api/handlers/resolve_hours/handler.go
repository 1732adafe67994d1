package resolve_hours

import (
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/business-hours/resolve?date=YYYY-MM-DD
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /business-hours/resolve - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if date == nil {
		h.logger.Warn("GET /business-hours/resolve - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.GetEffectiveHours(r.Context(), *date)
	if err != nil {
		h.logger.Error("GET /business-hours/resolve - Failed to resolve hours: date=%s, error=%v", r.URL.Query().Get("date"), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /business-hours/resolve - Hours resolved: date=%s, open=%t, source=%s",
		result.Date, result.IsOpen, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
