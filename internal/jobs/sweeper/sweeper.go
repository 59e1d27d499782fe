package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	reconcilerModels "github.com/m04kA/SMC-ParkingService/internal/service/reconciler/models"
)

// ErrInvalidSchedule расписание не удалось разобрать
var ErrInvalidSchedule = errors.New("sweeper: invalid schedule")

// Reconciler проход реконсиляции
type Reconciler interface {
	Reconcile(ctx context.Context, location *string) (*reconcilerModels.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновая реконсиляция по cron расписанию
type Sweeper struct {
	cron       *cron.Cron
	reconciler Reconciler
	timeout    time.Duration
	logger     Logger

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// New создает Sweeper. schedule принимает стандартный cron формат и дескрипторы вида @every 1m.
// timeout ограничивает один проход, 0 - без ограничения
func New(schedule string, loc *time.Location, timeout time.Duration, reconciler Reconciler, logger Logger) (*Sweeper, error) {
	if loc == nil {
		loc = time.Local
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Sweeper{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		reconciler: reconciler,
		timeout:    timeout,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	return s, nil
}

// Start запускает планировщик в отдельной горутине
func (s *Sweeper) Start() {
	s.logger.Info("Sweeper: started")
	s.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения текущего прохода или отмены ctx
func (s *Sweeper) Stop(ctx context.Context) {
	s.once.Do(func() {
		stopped := s.cron.Stop()
		select {
		case <-stopped.Done():
		case <-ctx.Done():
			s.cancel()
			<-stopped.Done()
		}
		s.cancel()
		s.logger.Info("Sweeper: stopped")
	})
}

// RunOnce выполняет один глобальный проход
func (s *Sweeper) RunOnce(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	report, err := s.reconciler.Reconcile(ctx, nil)
	if err != nil {
		return err
	}

	if len(report.Expired) > 0 || len(report.Skipped) > 0 || len(report.Conflicts) > 0 {
		s.logger.Info("Sweeper: expired=%d skipped=%d conflicts=%d",
			len(report.Expired), len(report.Skipped), len(report.Conflicts))
	}
	return nil
}

func (s *Sweeper) run() {
	if err := s.RunOnce(s.ctx); err != nil {
		s.logger.Error("Sweeper: reconciliation failed: %v", err)
	}
}
