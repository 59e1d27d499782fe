package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return &createBooking.Response{
		ID:            5,
		OwnerID:       req.OwnerID,
		CustomerName:  req.CustomerName,
		VehicleNumber: req.VehicleNumber,
		Location:      "CityMall",
		SlotID:        req.SlotID,
		Floor:         1,
		Date:          req.Date,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		StartAt:       start,
		EndAt:         start.Add(2 * time.Hour),
		Amount:        req.Amount,
		Status:        string(domain.ReservationActive),
		CreatedAt:     start,
	}, nil
}

const body = `{"name":"Alice","vehicle":"KA01AB1234","slot":"F1-A2","location":"CityMall",` +
	`"date":"2024-01-01","time":"10:00","duration":2,"amount":12.5}`

func serve(h *Handler, requester *domain.Requester, payload string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	if requester != nil {
		r = r.WithContext(middleware.WithRequester(r.Context(), *requester))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop{})

	w := serve(h, &domain.Requester{ID: 7, Role: domain.RoleCustomer}, body)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(7), uc.got.OwnerID)
	assert.Equal(t, "F1-A2", uc.got.SlotID)
	assert.Equal(t, 2, uc.got.DurationHours)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "active", resp["status"])
	assert.Equal(t, "2024-01-01 12:00", resp["end_at"])
	assert.Equal(t, float64(7), resp["user_id"])
}

func TestHandle_Errors(t *testing.T) {
	customer := &domain.Requester{ID: 7, Role: domain.RoleCustomer}

	tests := []struct {
		name       string
		requester  *domain.Requester
		payload    string
		err        error
		wantStatus int
	}{
		{name: "no requester", payload: body, wantStatus: http.StatusUnauthorized},
		{name: "broken body", requester: customer, payload: "{", wantStatus: http.StatusBadRequest},
		{name: "unavailable", requester: customer, payload: body, err: fmt.Errorf("%w: taken", createBooking.ErrSlotUnavailable), wantStatus: http.StatusConflict},
		{name: "not found", requester: customer, payload: body, err: createBooking.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "time format", requester: customer, payload: body, err: createBooking.ErrInvalidTimeFormat, wantStatus: http.StatusBadRequest},
		{name: "invalid input", requester: customer, payload: body, err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", requester: customer, payload: body, err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.Nop{})
			w := serve(h, tt.requester, tt.payload)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
