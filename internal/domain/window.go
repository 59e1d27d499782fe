package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidTimeFormat returned when date or time cannot be parsed
	ErrInvalidTimeFormat = errors.New("domain: invalid date or time format")

	// ErrInvalidDuration returned when duration is not a positive number of hours
	ErrInvalidDuration = errors.New("domain: duration must be positive")
)

// Window is the half-open interval [StartAt, EndAt) a reservation occupies
type Window struct {
	StartAt time.Time
	EndAt   time.Time
}

// NewWindow combines a YYYY-MM-DD date and an HH:MM time in loc and adds
// durationHours. Month, day, hour and minute may omit the leading zero
// (2024-1-5 9:5). No conversion between zones is performed.
func NewWindow(date, startTime string, durationHours int, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}

	startAt, err := time.ParseInLocation(inputDateTimeFormat, date+" "+startTime, loc)
	if err != nil {
		return Window{}, ErrInvalidTimeFormat
	}

	if durationHours <= 0 {
		return Window{}, ErrInvalidDuration
	}

	return Window{
		StartAt: startAt,
		EndAt:   startAt.Add(time.Duration(durationHours) * time.Hour),
	}, nil
}

// Elapsed reports whether the window has ended at now
func (w Window) Elapsed(now time.Time) bool {
	return !w.EndAt.After(now)
}
