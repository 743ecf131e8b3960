package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"user-admin-api/config"
	domain "user-admin-api/internal/domain/user"
	"user-admin-api/internal/infrastructure/db/migrations"
	"user-admin-api/internal/infrastructure/db/postgres"
	pgUser "user-admin-api/internal/infrastructure/db/postgres/user"
	"user-admin-api/internal/infrastructure/db/sqlite"
	sqliteUser "user-admin-api/internal/infrastructure/db/sqlite/user"
)

// LoadConfig reads .env when present, then the environment, and validates.
func LoadConfig(envFile string) (config.Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// OpenStore connects the configured backend, applies migrations and returns
// the repository together with a function releasing the handle.
func OpenStore(ctx context.Context, logger *zap.Logger, cfg config.Config) (domain.Repository, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(ctx, logger, cfg.DB.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqliteUser.NewRepository(db, cfg.DB.QueryTimeout), func() { _ = db.Close() }, nil

	case config.DriverPostgres:
		url, err := cfg.MigrateURL()
		if err != nil {
			return nil, nil, err
		}
		if err = migrations.Up(cfg.DB.Driver, url); err != nil {
			return nil, nil, err
		}
		dsn, err := cfg.DBDSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.New(ctx, logger, dsn)
		if err != nil {
			return nil, nil, err
		}
		return pgUser.NewRepository(pool, cfg.DB.QueryTimeout), pool.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported DB driver %q", cfg.DB.Driver)
}
