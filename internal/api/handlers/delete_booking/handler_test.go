package delete_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Delete(context.Context, int64, domain.Requester) error {
	return f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusOK},
		{name: "not admin", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "missing", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/4", nil)
			r = mux.SetURLVars(r, map[string]string{"bookingId": "4"})
			r = r.WithContext(middleware.WithRequester(r.Context(), domain.Requester{ID: 1, Role: domain.RoleAdmin}))
			w := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, logger.Nop{}).Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
