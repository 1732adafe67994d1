package list_reservations

import (
	"errors"
	"net/http"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/api/handlers"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
)

var errDateWithPeriod = errors.New("date cannot be combined with from/to")

// ToServiceRequest формирует фильтр сервиса из query параметров.
// date - короткая запись для from=to=date.
func ToServiceRequest(r *http.Request) (*models.ListReservationsRequest, error) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}

	if date != nil {
		if from != nil || to != nil {
			return nil, errDateWithPeriod
		}
		from, to = date, date
	}

	return &models.ListReservationsRequest{
		From:         from,
		To:           to,
		DesignerName: handlers.QueryString(r, "designer"),
		Status:       handlers.QueryString(r, "status"),
	}, nil
}
