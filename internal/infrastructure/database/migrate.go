package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taskmaster/matrix/internal/infrastructure/config"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationFiles embed.FS

// Migrator runs the embedded schema migrations for the connected driver
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator prepares a migrator bound to db. Closing the migrator is not
// required and would close db as well.
func NewMigrator(db *DB) (*Migrator, error) {
	var (
		driver database.Driver
		err    error
	)

	switch db.Driver() {
	case config.DriverPostgres:
		driver, err = postgres.WithInstance(db.DB.DB, &postgres.Config{})
	case config.DriverSQLite:
		driver, err = sqlite3.WithInstance(db.DB.DB, &sqlite3.Config{})
	default:
		return nil, fmt.Errorf("no migrations for driver %q", db.Driver())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations/"+db.Driver())
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, db.Driver(), driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Migrator{m: m}, nil
}

// Up applies all pending migrations
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Down reverts all applied migrations
func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// Version reports the current schema version; version 0 means no migration has run
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

// Migrate applies all pending migrations to db
func Migrate(db *DB) error {
	mg, err := NewMigrator(db)
	if err != nil {
		return err
	}
	return mg.Up()
}
