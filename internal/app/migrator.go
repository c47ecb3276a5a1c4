package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// RunMigrations применяет goose миграции при старте сервиса
func RunMigrations(ctx context.Context, db *sql.DB, dir string, log Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations: set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("migrations: get version: %w", err)
	}

	log.Info("Migrations applied, schema version=%d", version)
	return nil
}
