package get_calendar_conflicts

import (
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

// validateRequest проверяет период: обе даты заданы, from <= to, не длиннее MaxConflictRangeDays
func validateRequest(req *Request) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	from, to := types.DateOnly(req.From), types.DateOnly(req.To)
	if from.After(to) {
		return fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	if to.Sub(from).Hours()/24 >= domain.MaxConflictRangeDays {
		return fmt.Errorf("%w: range longer than %d days", ErrInvalidInput, domain.MaxConflictRangeDays)
	}

	return nil
}
