package bootstrap_catalog

import "errors"

var (
	// ErrInvalidInput возвращается при пустом или некорректном каталоге
	ErrInvalidInput = errors.New("bootstrap_catalog: invalid catalog")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("bootstrap_catalog: internal error")
)
