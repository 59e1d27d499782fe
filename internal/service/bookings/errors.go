package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrInvalidStatusTransition возвращается при попытке вывести бронирование из конечного статуса
	ErrInvalidStatusTransition = errors.New("bookings: invalid status transition")

	// ErrInvalidTimeFormat возвращается, когда новую дату или время не удалось разобрать
	ErrInvalidTimeFormat = errors.New("bookings: invalid date or time format")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
