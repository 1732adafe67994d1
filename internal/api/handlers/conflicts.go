package handlers

import (
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
)

// ConflictErrorResponse тело ответа 409 со списком найденных конфликтов
type ConflictErrorResponse struct {
	Error     string                    `json:"error"`
	Conflicts []models.ConflictResponse `json:"conflicts"`
}

// RespondConflicts пишет 409 с конфликтами, из-за которых запись не сохранена
func RespondConflicts(w http.ResponseWriter, msg string, conflicts []domain.ConflictRecord) {
	RespondJSON(w, http.StatusConflict, ConflictErrorResponse{
		Error:     msg,
		Conflicts: models.FromDomainConflicts(conflicts),
	})
}
