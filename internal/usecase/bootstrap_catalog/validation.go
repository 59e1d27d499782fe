package bootstrap_catalog

import (
	"fmt"
	"strings"
)

// validateRequest валидирует каталог
func validateRequest(req *Request) error {
	if len(req.Locations) == 0 || len(req.Floors) == 0 || len(req.Rows) == 0 || len(req.Numbers) == 0 {
		return fmt.Errorf("%w: locations, floors, rows and numbers must not be empty", ErrInvalidInput)
	}

	for _, loc := range req.Locations {
		if strings.TrimSpace(loc) == "" {
			return fmt.Errorf("%w: empty location", ErrInvalidInput)
		}
	}

	for _, floor := range req.Floors {
		if floor <= 0 {
			return fmt.Errorf("%w: floor must be positive, got %d", ErrInvalidInput, floor)
		}
	}

	for _, row := range req.Rows {
		if strings.TrimSpace(row) == "" {
			return fmt.Errorf("%w: empty row", ErrInvalidInput)
		}
	}

	for _, n := range req.Numbers {
		if n <= 0 {
			return fmt.Errorf("%w: slot number must be positive, got %d", ErrInvalidInput, n)
		}
	}

	return nil
}
