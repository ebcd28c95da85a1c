package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// DB is the part of a connection pool the migrator needs
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Migrator applies numbered SQL files once each
type Migrator struct {
	db     DB
	logger zerolog.Logger
}

func NewMigrator(db DB, logger zerolog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

const (
	createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
	versionRecorded = `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`
	recordVersion   = `INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`
)

// VersionOf returns the part of a file name before the first underscore,
// so "001_init.sql" is version "001".
func VersionOf(filename string) string {
	version, _, _ := strings.Cut(filepath.Base(filename), "_")
	return version
}

// MigrateFromFile runs one file and records its version in the same
// transaction. A recorded version is skipped.
func (m *Migrator) MigrateFromFile(ctx context.Context, path string) error {
	if _, err := m.db.Exec(ctx, createVersionsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	name := filepath.Base(path)
	version := VersionOf(name)
	log := m.logger.With().Str("file", name).Logger()

	var done bool
	if err := m.db.QueryRow(ctx, versionRecorded, version).Scan(&done); err != nil {
		return fmt.Errorf("check migration %s: %w", version, err)
	}
	if done {
		log.Debug().Msg("Migration already applied, skipping")
		return nil
	}

	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(script)); err != nil {
		return fmt.Errorf("migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, recordVersion, version, time.Now()); err != nil {
		return fmt.Errorf("record migration %s: %w", version, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}

	log.Info().Msg("Migration applied")
	return nil
}

// MigrateFromDirectory applies dir/*.sql in lexical order and stops at the
// first failure.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("migrations directory: %w", err)
	}
	scripts, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(scripts)

	for _, path := range scripts {
		if err := m.MigrateFromFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}
