package get_admin_stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/stats"
	"github.com/m04kA/SMC-ParkingService/internal/service/stats/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeService struct{}

func (fakeService) Stats(_ context.Context, requester domain.Requester) (*models.StatsResponse, error) {
	if !requester.IsAdmin() {
		return nil, stats.ErrAccessDenied
	}
	return &models.StatsResponse{TotalBookings: 3, ActiveBookings: 1, TotalRevenue: 37.5, AvailableSlots: 2}, nil
}

func TestHandle(t *testing.T) {
	serve := func(requester *domain.Requester) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
		if requester != nil {
			r = r.WithContext(middleware.WithRequester(r.Context(), *requester))
		}
		w := httptest.NewRecorder()
		NewHandler(fakeService{}, logger.Nop{}).Handle(w, r)
		return w
	}

	w := serve(&domain.Requester{ID: 1, Role: domain.RoleAdmin})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_bookings":3,"active_bookings":1,"total_revenue":37.5,"available_slots":2}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(&domain.Requester{ID: 7, Role: domain.RoleCustomer}).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(nil).Code)
}
