// Package db provides database connection infrastructure.
// This is part of the platform layer and contains no business logic.
package db

import (
	"context"
	"io/fs"

	"salesops_backend/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies all pending goose migrations from the embedded
// filesystem. Migrations run through database/sql via the pgx stdlib driver.
func RunMigrations(ctx context.Context, cfg config.DatabaseConfig, migrationsFS fs.FS, dir string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.GetDatabaseURL())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, sqlDB, dir)
}
