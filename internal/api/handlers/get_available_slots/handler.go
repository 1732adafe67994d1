package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	getAvailableSlots "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/get_available_slots"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/ptr"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
	msgInvalidStep     = "некорректный шаг сетки слотов"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD), designer, duration, step (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if date == nil {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	step, err := handlers.QueryInt(r, "step")
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid step: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStep)
		return
	}

	req := &getAvailableSlots.Request{
		Date:            *date,
		DesignerName:    handlers.QueryString(r, "designer"),
		DurationMinutes: duration,
		StepMinutes:     step,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /available-slots - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /available-slots - Failed to get slots: date=%s, designer=%s, error=%v",
			r.URL.Query().Get("date"), ptr.Deref(req.DesignerName), err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, designer=%s, slots_count=%d",
		response.Date, ptr.Deref(req.DesignerName), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
