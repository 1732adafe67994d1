package create_reservation

import (
	"fmt"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, r *domain.Reservation) error {
	if req.Actor == "" {
		return ErrActorRequired
	}

	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
