package get_calendar_conflicts

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	getCalendarConflicts "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/get_calendar_conflicts"
)

const (
	msgInvalidPeriod = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"
)

type Handler struct {
	useCase GetCalendarConflictsUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/conflicts?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil || from == nil {
		h.logger.Warn("GET /conflicts - Invalid from: %q", r.URL.Query().Get("from"))
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil || to == nil {
		h.logger.Warn("GET /conflicts - Invalid to: %q", r.URL.Query().Get("to"))
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCalendarConflicts.Request{From: *from, To: *to})
	if err != nil {
		if errors.Is(err, getCalendarConflicts.ErrInvalidInput) {
			h.logger.Warn("GET /conflicts - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /conflicts - Failed to build conflict index: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /conflicts - Conflict index: from=%s, to=%s, dates=%d, cached=%t",
		r.URL.Query().Get("from"), r.URL.Query().Get("to"), len(result.Index), result.Cached)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
