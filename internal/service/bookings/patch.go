package bookings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// buildPatch проверяет запрос и собирает патч для текущего состояния бронирования
func buildPatch(current *domain.Reservation, req *models.UpdateBookingRequest, loc *time.Location) (domain.ReservationPatch, error) {
	var patch domain.ReservationPatch

	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" || len(name) > domain.MaxNameLength {
			return patch, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
		}
		patch.CustomerName = &name
	}

	if req.VehicleNumber != nil {
		vehicle := strings.TrimSpace(*req.VehicleNumber)
		if vehicle == "" || len(vehicle) > domain.MaxVehicleLength {
			return patch, fmt.Errorf("%w: vehicle must be 1..%d characters", ErrInvalidInput, domain.MaxVehicleLength)
		}
		patch.VehicleNumber = &vehicle
	}

	// сумма задаётся клиентом и не проверяется
	if req.Amount != nil {
		patch.Amount = req.Amount
	}

	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			return patch, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		if current.Status.IsTerminal() && status != current.Status {
			return patch, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, status)
		}
		if status != current.Status {
			patch.Status = &status
		}
	}

	if req.ChangesWindow() {
		date, startTime, hours := current.Date, current.StartTime, current.DurationHours
		if req.Date != nil {
			date = *req.Date
		}
		if req.StartTime != nil {
			startTime = *req.StartTime
		}
		if req.DurationHours != nil {
			hours = *req.DurationHours
		}

		window, err := domain.NewWindow(date, startTime, hours, loc)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidDuration) {
				return patch, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return patch, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
		}

		date, startTime = window.StartAt.Format(domain.DateFormat), window.StartAt.Format(domain.TimeFormat)
		patch.Date = &date
		patch.StartTime = &startTime
		patch.DurationHours = &hours
		patch.StartAt = &window.StartAt
		patch.EndAt = &window.EndAt
	}

	return patch, nil
}
