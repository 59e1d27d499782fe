package stats

import "errors"

var (
	// ErrAccessDenied возвращается, когда запрос выполняет не администратор
	ErrAccessDenied = errors.New("stats: admin access required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("stats: internal error")
)
