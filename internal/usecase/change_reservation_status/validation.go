package change_reservation_status

import (
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if !domain.ReservationStatus(req.To).IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.To)
	}

	if req.ExpectedStatus != nil && !domain.ReservationStatus(*req.ExpectedStatus).IsValid() {
		return fmt.Errorf("%w: unknown expected status %q", ErrInvalidInput, *req.ExpectedStatus)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason longer than %d", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}
