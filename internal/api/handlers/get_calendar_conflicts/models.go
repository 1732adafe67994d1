package get_calendar_conflicts

import (
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
	getCalendarConflicts "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/get_calendar_conflicts"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// CalendarConflictsResponse HTTP response model
type CalendarConflictsResponse struct {
	From      string                               `json:"from"`
	To        string                               `json:"to"`
	ByDate    map[string][]models.ConflictResponse `json:"byDate"`
	Conflicts []models.ConflictResponse            `json:"conflicts"`
	Cached    bool                                 `json:"cached"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendarConflicts.Response) *CalendarConflictsResponse {
	byDate := make(map[string][]models.ConflictResponse, len(resp.Index))
	for date, records := range resp.Index {
		byDate[date] = models.FromDomainConflicts(records)
	}

	return &CalendarConflictsResponse{
		From:      types.FormatDate(resp.From),
		To:        types.FormatDate(resp.To),
		ByDate:    byDate,
		Conflicts: models.FromDomainConflicts(resp.Conflicts),
		Cached:    resp.Cached,
	}
}
