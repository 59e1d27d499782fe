package reconciler

import "errors"

var (
	// ErrLockTimeout возвращается, когда не удалось дождаться предыдущего прохода
	ErrLockTimeout = errors.New("reconciler: failed to acquire reconcile lock")

	// ErrInternal возвращается при ошибках хранилища, прерывающих проход
	ErrInternal = errors.New("reconciler: internal error")
)
