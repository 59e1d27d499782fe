package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeService struct {
	req *models.UpdateBookingRequest
	err error
}

func (f *fakeService) Update(_ context.Context, id int64, _ domain.Requester, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: *req.Status}, nil
}

func serve(svc BookingService) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/3/cancel", nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": "3"})
	r = r.WithContext(middleware.WithRequester(r.Context(), domain.Requester{ID: 7, Role: domain.RoleCustomer}))
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop{}).Handle(w, r)
	return w
}

func TestHandle_SetsCancelledStatus(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.req.Status)
	assert.Equal(t, "cancelled", *svc.req.Status)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
}

func TestHandle_AlreadyFinished(t *testing.T) {
	w := serve(&fakeService{err: bookings.ErrInvalidStatusTransition})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
