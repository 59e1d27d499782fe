package schema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// Execer минимальный интерфейс для выполнения DDL
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

var postgresQueries = []string{
	`CREATE TABLE IF NOT EXISTS parking_slots (
		id BIGSERIAL PRIMARY KEY,
		slot_id VARCHAR(16) NOT NULL,
		location VARCHAR(100) NOT NULL,
		floor INTEGER NOT NULL CHECK (floor > 0),
		status VARCHAR(16) NOT NULL DEFAULT 'available',
		booked_by VARCHAR(100),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (location, slot_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL,
		customer_name VARCHAR(100) NOT NULL,
		vehicle_number VARCHAR(20) NOT NULL,
		location VARCHAR(100) NOT NULL,
		slot_id VARCHAR(16) NOT NULL,
		floor INTEGER NOT NULL,
		booking_date VARCHAR(10) NOT NULL,
		start_time VARCHAR(5) NOT NULL,
		duration_hours INTEGER NOT NULL,
		start_at TIMESTAMPTZ,
		end_at TIMESTAMPTZ,
		amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_owner_id ON reservations(owner_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_active_slot
		ON reservations(location, slot_id) WHERE status = 'active'`,
}

var sqliteQueries = []string{
	`PRAGMA foreign_keys=ON`,
	`CREATE TABLE IF NOT EXISTS parking_slots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slot_id TEXT NOT NULL,
		location TEXT NOT NULL,
		floor INTEGER NOT NULL CHECK (floor > 0),
		status TEXT NOT NULL DEFAULT 'available',
		booked_by TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (location, slot_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		owner_id INTEGER NOT NULL,
		customer_name TEXT NOT NULL,
		vehicle_number TEXT NOT NULL,
		location TEXT NOT NULL,
		slot_id TEXT NOT NULL,
		floor INTEGER NOT NULL,
		booking_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		duration_hours INTEGER NOT NULL,
		start_at DATETIME,
		end_at DATETIME,
		amount REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_owner_id ON reservations(owner_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_active_slot
		ON reservations(location, slot_id) WHERE status = 'active'`,
}

// Migrate создает таблицы и индексы, если их ещё нет
func Migrate(ctx context.Context, db Execer, dialect psqlbuilder.Dialect) error {
	queries := postgresQueries
	if dialect == psqlbuilder.DialectSQLite {
		queries = sqliteQueries
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("schema: failed to execute migration query: %w", err)
		}
	}

	return nil
}
