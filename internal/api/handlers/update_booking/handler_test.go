package update_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
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
	id  int64
	req *models.UpdateBookingRequest
	err error
}

func (f *fakeService) Update(_ context.Context, id int64, _ domain.Requester, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	f.id, f.req = id, req
	if f.err != nil {
		return nil, f.err
	}
	status := "active"
	if req.Status != nil {
		status = *req.Status
	}
	return &models.BookingResponse{ID: id, Status: status}, nil
}

func serve(svc BookingService, id, payload string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+id, strings.NewReader(payload))
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	r = r.WithContext(middleware.WithRequester(r.Context(), domain.Requester{ID: 7, Role: domain.RoleCustomer}))
	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop{}).Handle(w, r)
	return w
}

func TestHandle_PassesPartialUpdate(t *testing.T) {
	svc := &fakeService{}

	// end_at присылает фронтенд, сервер его пересчитывает сам
	w := serve(svc, "12", `{"duration":3,"amount":30,"end_at":"2024-01-01 13:00"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(12), svc.id)
	require.NotNil(t, svc.req.DurationHours)
	assert.Equal(t, 3, *svc.req.DurationHours)
	assert.Nil(t, svc.req.Status)
	assert.Nil(t, svc.req.Date)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "bad id", id: "abc", wantStatus: http.StatusBadRequest},
		{name: "zero id", id: "0", wantStatus: http.StatusBadRequest},
		{name: "not found", id: "1", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign booking", id: "1", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "terminal", id: "1", err: bookings.ErrInvalidStatusTransition, wantStatus: http.StatusBadRequest},
		{name: "time format", id: "1", err: bookings.ErrInvalidTimeFormat, wantStatus: http.StatusBadRequest},
		{name: "invalid", id: "1", err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", id: "1", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.id, `{"status":"completed"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
