package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SlotID) == "" {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}
	if len(req.SlotID) > domain.MaxSlotIDLength {
		return fmt.Errorf("%w: slot must be at most %d characters", ErrInvalidInput, domain.MaxSlotIDLength)
	}

	if len(req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location must be at most %d characters", ErrInvalidInput, domain.MaxLocationLength)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if strings.TrimSpace(req.VehicleNumber) == "" {
		return fmt.Errorf("%w: vehicle is required", ErrInvalidInput)
	}
	if len(req.VehicleNumber) > domain.MaxVehicleLength {
		return fmt.Errorf("%w: vehicle must be at most %d characters", ErrInvalidInput, domain.MaxVehicleLength)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if req.DurationHours <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	return nil
}
