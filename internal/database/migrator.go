package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/deppfellow/vocab/internal/config"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// Both migration sets ship inside the binary. postgres files follow tern's
// naming (001_name.sql), sqlite files golang-migrate's (000001_name.up.sql).
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrate brings the configured store to the latest schema version.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	if cfg.Database.IsSQLite() {
		return migrateSQLite(logger, cfg.Database.Path)
	}
	return migratePostgres(ctx, logger, cfg.Database)
}

func migratePostgres(ctx context.Context, logger *zerolog.Logger, cfg config.DatabaseConfig) error {
	// A single connection is enough for a one-off action.
	conn, err := pgx.Connect(ctx, PostgresDSN(cfg))
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

func migrateSQLite(logger *zerolog.Logger, path string) error {
	source, err := iofs.New(migrations, "migrations/sqlite")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	// The migrator closes the handle it is given, so it gets its own.
	db, err := sql.Open(DriverNameSQLite, SQLiteDSN(path))
	if err != nil {
		return fmt.Errorf("opening sqlite database for migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, DriverNameSQLite, driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("constructing database migrator: %w", err)
	}
	defer m.Close()

	from, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info().Msgf("database schema up to date, version %d", from)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	to, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("retrieving migrated database version: %w", err)
	}

	logger.Info().Msgf("migrated database schema, from %d to %d", from, to)
	return nil
}
