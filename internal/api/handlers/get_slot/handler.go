package get_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots"
)

const (
	msgNotFound = "парковочное место не найдено"
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

// Handle GET /api/v1/parking-slots/{location}/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	location, slotID := vars["location"], vars["slotId"]

	slot, err := h.service.Get(r.Context(), location, slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("GET /parking-slots/{location}/{slotId} - Slot not found: location=%s, slot=%s", location, slotID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /parking-slots/{location}/{slotId} - Failed to get slot: location=%s, slot=%s, error=%v",
				location, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, slot)
}
