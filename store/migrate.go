package store

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateUp applies all pending versioned migrations from the embedded FS.
// Returns nil when there is nothing new to apply.
func (d *DB) MigrateUp() error {
	m, err := d.newMigrator()
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up: %w", err)
	}
	d.log.Info("Migrations applied")
	return nil
}

// MigrateVersion returns the current migration version and dirty flag.
func (d *DB) MigrateVersion() (version uint, dirty bool, err error) {
	m, err := d.newMigrator()
	if err != nil {
		return 0, false, err
	}
	return m.Version()
}

// newMigrator creates a golang-migrate instance backed by the embedded FS.
// Callers must NOT call m.Close() since that would close the shared sql.DB.
func (d *DB) newMigrator() (*migrate.Migrate, error) {
	sqlDB, err := d.GormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("create database driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "webdemo", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
