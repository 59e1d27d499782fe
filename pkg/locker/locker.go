package locker

import (
	"context"
	"errors"
	"sync"
)

// ErrNotAcquired блокировку не удалось взять до отмены контекста
var ErrNotAcquired = errors.New("locker: lock not acquired")

// Release освобождает взятую блокировку
type Release func() error

// Locker взаимное исключение по ключу
type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}

// Memory блокировки внутри одного процесса
type Memory struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewMemory создает локальный Locker
func NewMemory() *Memory {
	return &Memory{locks: make(map[string]chan struct{})}
}

// Acquire ждёт освобождения ключа или отмены контекста
func (m *Memory) Acquire(ctx context.Context, key string) (Release, error) {
	m.mu.Lock()
	ch, ok := m.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		m.locks[key] = ch
	}
	m.mu.Unlock()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() error {
			once.Do(func() { <-ch })
			return nil
		}, nil
	case <-ctx.Done():
		return nil, errors.Join(ErrNotAcquired, ctx.Err())
	}
}
