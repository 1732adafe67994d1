package check_conflicts

import (
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DesignerName == "" {
		return fmt.Errorf("%w: designer is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes > domain.MaxReservationDuration {
		return fmt.Errorf("%w: duration must be between 1 and %d", ErrInvalidInput, domain.MaxReservationDuration)
	}

	return nil
}
