package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// dirFor maps a config driver name onto its migrations directory.
func dirFor(driver string) (string, error) {
	switch driver {
	case "sqlite":
		return "sqlite", nil
	case "postgres":
		return "postgres", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// New builds a migrator for databaseURL (sqlite3:// or pgx5://).
// The caller owns the returned instance and must Close it.
func New(driver, databaseURL string) (*migrate.Migrate, error) {
	dir, err := dirFor(driver)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(files, dir)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("init migrator failed: %w", err)
	}
	return m, nil
}

// UpSQLite applies the sqlite migrations on an open handle. The handle stays
// open: the migrator is not closed because closing it would close db too.
func UpSQLite(db *sql.DB) error {
	src, err := iofs.New(files, "sqlite")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Up applies every pending migration and closes the migrator.
func Up(driver, databaseURL string) error {
	return run(driver, databaseURL, (*migrate.Migrate).Up)
}

// Down reverts every applied migration and closes the migrator.
func Down(driver, databaseURL string) error {
	return run(driver, databaseURL, (*migrate.Migrate).Down)
}

func run(driver, databaseURL string, step func(*migrate.Migrate) error) (err error) {
	m, err := New(driver, databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err = step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
