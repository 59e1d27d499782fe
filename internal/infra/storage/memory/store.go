package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Store хранилище мест и бронирований в памяти процесса.
// Все операции сериализуются, транзакция откатывается из снимка
type Store struct {
	mu sync.Mutex

	slots        map[int64]domain.Slot
	reservations map[int64]domain.Reservation

	nextSlotID        int64
	nextReservationID int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:        make(map[int64]domain.Slot),
		reservations: make(map[int64]domain.Reservation),
		now:          time.Now,
	}
}

type txKey struct {
	store *Store
}

func (s *Store) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{store: s}).(bool)
	return v
}

// lock захватывает хранилище, если вызов не идёт из уже открытой транзакции
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	slots             map[int64]domain.Slot
	reservations      map[int64]domain.Reservation
	nextSlotID        int64
	nextReservationID int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		slots:             make(map[int64]domain.Slot, len(s.slots)),
		reservations:      make(map[int64]domain.Reservation, len(s.reservations)),
		nextSlotID:        s.nextSlotID,
		nextReservationID: s.nextReservationID,
	}
	for id, slot := range s.slots {
		snap.slots[id] = slot
	}
	for id, res := range s.reservations {
		snap.reservations[id] = res
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.slots = snap.slots
	s.reservations = snap.reservations
	s.nextSlotID = snap.nextSlotID
	s.nextReservationID = snap.nextReservationID
}

// TxManager транзакции над Store с тем же контрактом, что и pkg/txmanager
type TxManager struct {
	store *Store
}

// NewTxManager создает менеджер транзакций для хранилища
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	s := m.store
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{store: s}, true)); err != nil {
		s.restore(snap)
		return err
	}

	return nil
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
