package get_available_slots

import (
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DesignerName != nil && *req.DesignerName == "" {
		return fmt.Errorf("%w: designer must not be empty", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxReservationDuration {
		return fmt.Errorf("%w: duration must be between 0 and %d", ErrInvalidInput, domain.MaxReservationDuration)
	}

	// 0 означает шаг по умолчанию
	if req.StepMinutes != 0 && (req.StepMinutes < domain.MinSlotStepMinutes || req.StepMinutes > domain.MaxSlotStepMinutes) {
		return fmt.Errorf("%w: step must be between %d and %d", ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}

	return nil
}
