package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers/health"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/schema"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	statsRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/stats"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	reconcilerService "github.com/m04kA/SMC-ParkingService/internal/service/reconciler"
	slotsService "github.com/m04kA/SMC-ParkingService/internal/service/slots"
	statsService "github.com/m04kA/SMC-ParkingService/internal/service/stats"
	bootstrapCatalogUC "github.com/m04kA/SMC-ParkingService/internal/usecase/bootstrap_catalog"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// slotRepository объединение требований всех потребителей реестра мест
type slotRepository interface {
	createBookingUC.SlotRepository
	bookingsService.SlotRepository
	slotsService.SlotRepository
	reconcilerService.SlotRepository
	bootstrapCatalogUC.SlotRepository
}

// reservationRepository объединение требований всех потребителей бронирований
type reservationRepository interface {
	createBookingUC.ReservationRepository
	bookingsService.ReservationRepository
	reconcilerService.ReservationRepository
	statsService.ReservationRepository
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage хранилище, выбранное в конфигурации
type storage struct {
	slots        slotRepository
	reservations reservationRepository
	stats        statsService.StatsRepository
	txManager    transactionManager
	pinger       health.Pinger // nil для хранилища в памяти
	close        func() error
}

// openStorage подключается к хранилищу. stopMetricsCh останавливает сбор статистики пула
func openStorage(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics, serviceName string, stopMetricsCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		store := memory.NewStore()
		log.Info("Using in-memory storage, data is lost on restart")
		return &storage{
			slots:        memory.NewSlotRepository(store),
			reservations: memory.NewReservationRepository(store),
			stats:        memory.NewStatsRepository(store),
			txManager:    memory.NewTxManager(store),
			close:        func() error { return nil },
		}, nil
	}

	dialect, err := psqlbuilder.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	// Настраиваем connection pool
	var txOpts []txmanager.Option
	if dialect == psqlbuilder.DialectSQLite {
		// SQLite допускает одного писателя, все запросы идут через одно соединение
		db.SetMaxOpenConns(1)
		txOpts = append(txOpts, txmanager.WithoutIsolation())
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	if cfg.MigrateOnStart {
		if err := schema.Migrate(ctx, db, dialect); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Database schema is up to date")
	}

	var wrapped *dbmetrics.DB
	if m != nil {
		wrapped = dbmetrics.WrapWithDefault(db, m, serviceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrapped = dbmetrics.Wrap(db, nil)
	}

	return &storage{
		slots:        slotRepo.NewRepository(wrapped, dialect),
		reservations: reservationRepo.NewRepository(wrapped, dialect),
		stats:        statsRepo.NewRepository(db, cfg.Driver),
		txManager:    txmanager.NewTransactionManager(wrapped, txOpts...),
		pinger:       wrapped,
		close:        db.Close,
	}, nil
}
