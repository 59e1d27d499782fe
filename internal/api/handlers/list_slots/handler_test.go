package list_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/service/slots"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeService struct {
	got *models.ListSlotsRequest
	err error
}

func (f *fakeService) List(_ context.Context, req *models.ListSlotsRequest) ([]models.SlotResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return []models.SlotResponse{}, nil
}

func TestHandle_ParsesFilters(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		location *string
		floor    *int
		status   *string
	}{
		{name: "no filters", query: ""},
		{name: "all filters", query: "?location=CityMall&floor=2&status=booked", location: ptr("CityMall"), floor: ptr(2), status: ptr("booked")},
		{name: "non numeric floor ignored", query: "?floor=ground", floor: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			w := httptest.NewRecorder()

			NewHandler(svc, logger.Nop{}).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/parking-slots"+tt.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "[]\n", w.Body.String())
			assert.Equal(t, tt.location, svc.got.Location)
			assert.Equal(t, tt.floor, svc.got.Floor)
			assert.Equal(t, tt.status, svc.got.Status)
		})
	}
}

func TestHandle_InvalidStatus(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{err: slots.ErrInvalidInput}, logger.Nop{}).
		Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/parking-slots?status=reserved", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func ptr[T any](v T) *T {
	return &v
}
