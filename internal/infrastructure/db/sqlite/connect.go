package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"user-admin-api/internal/infrastructure/db/migrations"
)

// New opens the database file at path (":memory:" works too), applies the
// embedded migrations and returns the handle. A single connection is kept so
// writers are serialised and in-memory databases survive between calls.
func New(ctx context.Context, logger *zap.Logger, path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", path)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	if err = migrations.UpSQLite(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("db connected successfully", zap.String("driver", "sqlite"), zap.String("path", path))

	return db, nil
}

func IsUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
