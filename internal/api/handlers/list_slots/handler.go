package list_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

const (
	msgInvalidStatus = "некорректный статус места, ожидается available или booked"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/parking-slots?location=CityMall&floor=1&status=available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := parseQuery(r)

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /parking-slots - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /parking-slots - Failed to list slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /parking-slots - Slots retrieved successfully: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQuery пустые параметры не фильтруют, нечисловой этаж игнорируется
func parseQuery(r *http.Request) *models.ListSlotsRequest {
	q := r.URL.Query()
	req := &models.ListSlotsRequest{}

	if location := q.Get("location"); location != "" {
		req.Location = &location
	}
	if status := q.Get("status"); status != "" {
		req.Status = &status
	}
	if floor, err := strconv.Atoi(q.Get("floor")); err == nil {
		req.Floor = &floor
	}

	return req
}
