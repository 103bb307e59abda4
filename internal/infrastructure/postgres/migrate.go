package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para database/sql
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate aplica las migraciones pendientes.
func Migrate(ctx context.Context, dsn string) error {
	return withGoose(dsn, func(db *sql.DB) error {
		return goose.UpContext(ctx, db, migrationsDir)
	})
}

// MigrationStatus registra el estado de cada migración con el logger de goose.
func MigrationStatus(ctx context.Context, dsn string) error {
	return withGoose(dsn, func(db *sql.DB) error {
		return goose.StatusContext(ctx, db, migrationsDir)
	})
}

// MigrateDown revierte la última migración aplicada.
func MigrateDown(ctx context.Context, dsn string) error {
	return withGoose(dsn, func(db *sql.DB) error {
		return goose.DownContext(ctx, db, migrationsDir)
	})
}

func withGoose(dsn string, fn func(db *sql.DB) error) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir DB para migraciones: %w", err)
	}
	defer db.Close()

	if err := fn(db); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	return nil
}
