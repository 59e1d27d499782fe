package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/events"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

// failingSlots отказывает при записи статуса места
type failingSlots struct {
	*memory.SlotRepository
}

func (f failingSlots) SetStatus(context.Context, string, string, domain.SlotStatus, *string) error {
	return errors.New("disk is full")
}

type fixture struct {
	uc           *UseCase
	slots        *memory.SlotRepository
	reservations *memory.ReservationRepository
	publisher    *recordingPublisher
	store        *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		store:        store,
		slots:        memory.NewSlotRepository(store),
		reservations: memory.NewReservationRepository(store),
		publisher:    &recordingPublisher{},
	}
	f.uc = NewUseCase(f.slots, f.reservations, f.publisher, memory.NewTxManager(store), time.UTC, logger.Nop{})
	f.uc.timeProvider = &fixedClock{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}

	for _, loc := range []string{"CityMall", "Airport"} {
		for _, id := range []string{"F1-A1", "F1-A2"} {
			_, err := f.slots.EnsureExists(context.Background(), &domain.Slot{
				SlotID: id, Location: loc, Floor: 1, Status: domain.SlotAvailable,
			})
			require.NoError(t, err)
		}
	}
	_, err := f.slots.EnsureExists(context.Background(), &domain.Slot{
		SlotID: "F2-D3", Location: "Stadium", Floor: 2, Status: domain.SlotAvailable,
	})
	require.NoError(t, err)

	return f
}

func validRequest() *Request {
	return &Request{
		OwnerID:       7,
		SlotID:        "F1-A1",
		Location:      "CityMall",
		CustomerName:  "Alice",
		VehicleNumber: "A123BC",
		Date:          "2024-01-01",
		StartTime:     "10:00",
		DurationHours: 2,
		Amount:        20,
	}
}

func (f *fixture) activeCount(t *testing.T) int {
	t.Helper()
	active := domain.ReservationActive
	list, err := f.reservations.List(context.Background(), domain.ReservationFilter{Status: &active})
	require.NoError(t, err)
	return len(list)
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, 1, resp.Floor)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), resp.StartAt)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), resp.EndAt)

	slot, err := f.slots.Get(ctx, "CityMall", "F1-A1")
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, slot.Status)
	require.NotNil(t, slot.BookedBy)
	assert.Equal(t, "Alice", *slot.BookedBy)

	stored, err := f.reservations.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationActive, stored.Status)
	assert.Equal(t, "2024-01-01", stored.Date)
	assert.Equal(t, "10:00", stored.StartTime)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.BookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, resp.ID, f.publisher.events[0].ReservationID)
}

func TestExecute_SlotAlreadyBooked(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.CustomerName = "Bob"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	assert.Equal(t, 1, f.activeCount(t))
	assert.Len(t, f.publisher.events, 1)
}

func TestExecute_SlotNotFound(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.SlotID = "F9-Z9"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	req.Location = ""
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	assert.Zero(t, f.activeCount(t))
}

func TestExecute_ResolvesSlotWithoutLocation(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Location = ""
	req.SlotID = "F2-D3"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Stadium", resp.Location)
	assert.Equal(t, 2, resp.Floor)
}

func TestExecute_AmbiguousSlotWithoutLocation(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Location = ""

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, f.activeCount(t))
}

func TestExecute_StoresCanonicalDateTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest()
	req.Date = "2024-1-5"
	req.StartTime = "9:5"

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", resp.Date)
	assert.Equal(t, "09:05", resp.StartTime)
	assert.Equal(t, time.Date(2024, 1, 5, 9, 5, 0, 0, time.UTC), resp.StartAt)

	stored, err := f.reservations.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", stored.Date)
	assert.Equal(t, "09:05", stored.StartTime)
}

func TestExecute_DurationAndAmountAreNotBounded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest()
	req.DurationHours = 24 * 365
	req.Amount = -20

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC), resp.EndAt)

	stored, err := f.reservations.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, -20.0, stored.Amount)
	assert.Equal(t, 24*365, stored.DurationHours)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "zero duration", mutate: func(r *Request) { r.DurationHours = 0 }, wantErr: ErrInvalidInput},
		{name: "negative duration", mutate: func(r *Request) { r.DurationHours = -3 }, wantErr: ErrInvalidInput},
		{name: "no slot", mutate: func(r *Request) { r.SlotID = "" }, wantErr: ErrInvalidInput},
		{name: "no name", mutate: func(r *Request) { r.CustomerName = "  " }, wantErr: ErrInvalidInput},
		{name: "no vehicle", mutate: func(r *Request) { r.VehicleNumber = "" }, wantErr: ErrInvalidInput},
		{name: "no date", mutate: func(r *Request) { r.Date = "" }, wantErr: ErrInvalidInput},
		{name: "no time", mutate: func(r *Request) { r.StartTime = "" }, wantErr: ErrInvalidInput},
		{name: "no owner", mutate: func(r *Request) { r.OwnerID = 0 }, wantErr: ErrInvalidInput},
		{name: "bad date", mutate: func(r *Request) { r.Date = "2024-02-30" }, wantErr: ErrInvalidTimeFormat},
		{name: "bad time", mutate: func(r *Request) { r.StartTime = "25:00" }, wantErr: ErrInvalidTimeFormat},
		{name: "garbage", mutate: func(r *Request) { r.Date = "tomorrow" }, wantErr: ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)

			slot, err := f.slots.Get(context.Background(), "CityMall", "F1-A1")
			require.NoError(t, err)
			assert.Equal(t, domain.SlotAvailable, slot.Status)
			assert.Zero(t, f.activeCount(t))
		})
	}
}

func TestExecute_ConcurrentRequestsBookOnce(t *testing.T) {
	f := newFixture(t)

	const n = 16
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		succeeded   int
		unavailable int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), validRequest())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotUnavailable):
				unavailable++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, unavailable)
	assert.Equal(t, 1, f.activeCount(t))
}

func TestExecute_RollsBackWhenSlotWriteFails(t *testing.T) {
	f := newFixture(t)
	f.uc.slotRepo = failingSlots{f.slots}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	assert.Zero(t, f.activeCount(t))
	assert.Empty(t, f.publisher.events)
}

func TestExecute_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}
