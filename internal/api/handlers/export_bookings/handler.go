package export_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/stats"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "требуются права администратора"
)

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/export
// Выгрузка всех бронирований как есть, без сверки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/export - Missing requester")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Export(r.Context(), requester)
	if err != nil {
		switch {
		case errors.Is(err, stats.ErrAccessDenied):
			h.logger.Warn("GET /admin/export - Access denied: user_id=%d", requester.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/export - Failed to export bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/export - Bookings exported: user_id=%d, count=%d", requester.ID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
