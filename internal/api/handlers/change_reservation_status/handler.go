package change_reservation_status

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/middleware"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/status"
	changeStatus "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/change_reservation_status"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingAdminID       = "отсутствует ID администратора"
	msgInvalidData          = "некорректные данные смены статуса"
	msgNotFound             = "бронирование не найдено"
	msgReasonRequired       = "для этого перехода необходимо указать причину"
	msgInvalidTransition    = "переход в указанный статус недопустим"
	msgStatusChanged        = "статус бронирования был изменен, обновите данные"
	msgConflicts            = "восстановление записи приводит к конфликтам"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/status - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id, actor))
	if err != nil {
		var conflictsErr *domain.ConflictsError
		switch {
		case errors.As(err, &conflictsErr):
			h.logger.Warn("PATCH /reservations/{id}/status - Conflicts on reactivation: id=%d, count=%d",
				id, len(conflictsErr.Conflicts))
			handlers.RespondConflicts(w, msgConflicts, conflictsErr.Conflicts)

		case errors.Is(err, changeStatus.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Reservation not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, changeStatus.ErrStatusConflict):
			h.logger.Warn("PATCH /reservations/{id}/status - Concurrent change: id=%d, error=%v", id, err)
			handlers.RespondConflict(w, msgStatusChanged)

		case errors.Is(err, status.ErrReasonRequired):
			h.logger.Warn("PATCH /reservations/{id}/status - Reason required: id=%d, to=%s", id, req.Status)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid transition: id=%d, error=%v", id, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, status.ErrActorRequired):
			handlers.RespondUnauthorized(w, msgMissingAdminID)

		case errors.Is(err, changeStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid data: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to change status: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status changed successfully: id=%d, %s -> %s, actor=%s",
		id, result.Record.OldStatus, result.Record.NewStatus, actor)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
