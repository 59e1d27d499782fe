package sweeper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reconcilerModels "github.com/m04kA/SMC-ParkingService/internal/service/reconciler/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type countingReconciler struct {
	calls atomic.Int32
	err   error
}

func (r *countingReconciler) Reconcile(_ context.Context, location *string) (*reconcilerModels.Report, error) {
	r.calls.Add(1)
	if location != nil {
		return nil, errors.New("sweeper must run a global pass")
	}
	if r.err != nil {
		return nil, r.err
	}
	return &reconcilerModels.Report{Scope: reconcilerModels.ScopeAll, Expired: []int64{1}}, nil
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New("every minute please", time.UTC, 0, &countingReconciler{}, logger.Nop{})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestRunOnce(t *testing.T) {
	rec := &countingReconciler{}
	s, err := New("@every 1h", time.UTC, time.Second, rec, logger.Nop{})
	require.NoError(t, err)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, int32(1), rec.calls.Load())

	rec.err = errors.New("lock timeout")
	assert.Error(t, s.RunOnce(context.Background()))
}

func TestStartStop(t *testing.T) {
	rec := &countingReconciler{}
	s, err := New("@every 1s", time.UTC, 0, rec, logger.Nop{})
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return rec.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	// повторная остановка безопасна
	s.Stop(ctx)

	calls := rec.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, calls, rec.calls.Load())
}
