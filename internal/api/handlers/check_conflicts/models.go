package check_conflicts

import (
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
	checkConflicts "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/check_conflicts"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// CheckConflictsRequest HTTP request model
type CheckConflictsRequest struct {
	DesignerName         string `json:"designerName"`
	Date                 string `json:"date"`
	Time                 string `json:"time"`
	DurationMinutes      int    `json:"durationMinutes"`
	ExcludeReservationID *int64 `json:"excludeReservationId,omitempty"`
}

// CheckConflictsResponse HTTP response model
type CheckConflictsResponse struct {
	HasConflicts bool                      `json:"hasConflicts"`
	HasErrors    bool                      `json:"hasErrors"`
	Conflicts    []models.ConflictResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictsRequest) ToUseCaseRequest() (*checkConflicts.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &checkConflicts.Request{
		DesignerName:         r.DesignerName,
		Date:                 date,
		Time:                 start,
		DurationMinutes:      r.DurationMinutes,
		ExcludeReservationID: r.ExcludeReservationID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflicts.Response) *CheckConflictsResponse {
	return &CheckConflictsResponse{
		HasConflicts: len(resp.Conflicts) > 0,
		HasErrors:    resp.HasErrors,
		Conflicts:    models.FromDomainConflicts(resp.Conflicts),
	}
}
