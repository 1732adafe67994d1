package check_conflicts

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	checkConflicts "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/check_conflicts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidData        = "некорректные параметры проверки"
	msgExcludedNotFound   = "исключаемое бронирование не найдено"
)

type Handler struct {
	useCase CheckConflictsUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/conflicts/check
// Проверяет кандидата на запись без сохранения; конфликты возвращаются с кодом 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /conflicts/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /conflicts/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkConflicts.ErrReservationNotFound):
			h.logger.Warn("POST /conflicts/check - Excluded reservation not found: %v", err)
			handlers.RespondNotFound(w, msgExcludedNotFound)

		case errors.Is(err, checkConflicts.ErrInvalidInput):
			h.logger.Warn("POST /conflicts/check - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /conflicts/check - Failed to check conflicts: designer=%s, date=%s, error=%v",
				req.DesignerName, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /conflicts/check - Checked: designer=%s, date=%s, time=%s, conflicts=%d",
		req.DesignerName, req.Date, req.Time, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
