package list_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/logger"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationListResponse), args.Error(1)
}

func get(h *Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandler_DateExpandsToPeriod(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.Nop())

	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListReservationsRequest) bool {
		return types.FormatDate(*req.From) == "2024-03-15" && types.FormatDate(*req.To) == "2024-03-15" &&
			*req.DesignerName == "Kim" && *req.Status == "confirmed"
	})).Return(&models.ReservationListResponse{Reservations: []models.ReservationResponse{{ID: 1}}}, nil)

	rec := get(h, "/api/v1/reservations?date=2024-03-15&designer=Kim&status=confirmed")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reservations":[{"id":1`)
}

func TestHandler_BadRequests(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/reservations?date=2024-03-15&from=2024-03-01").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/reservations?from=yesterday").Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)

	svc.On("List", mock.Anything, mock.Anything).Return(nil, reservations.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/reservations?status=archived").Code)
}
