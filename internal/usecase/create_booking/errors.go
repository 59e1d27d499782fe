package create_booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда место не найдено
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotUnavailable возвращается, когда место уже занято
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeFormat возвращается, когда дату или время начала не удалось разобрать
	ErrInvalidTimeFormat = errors.New("create_booking: invalid date or time format")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
