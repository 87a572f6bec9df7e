package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/api-sage/bank-ledger/src/internal/logger"
)

// migrationLockKey is the advisory lock id held while migrations run, so two
// replicas starting together never apply the same file twice.
const migrationLockKey int64 = 0x6c6564676572

// RunMigrations applies the *.sql files in migrationsDir that schema_migrations
// does not list yet, in name order, each in its own transaction. It returns the
// names it applied.
func RunMigrations(ctx context.Context, db *sql.DB, migrationsDir string) ([]string, error) {
	files, err := migrationFiles(migrationsDir)
	if err != nil {
		return nil, err
	}

	session, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve migration session: %w", err)
	}
	defer session.Close()

	if _, err := session.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
		return nil, fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		if _, err := session.ExecContext(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, migrationLockKey); err != nil {
			logger.Error("release migration lock failed", err, nil)
		}
	}()

	if _, err := session.ExecContext(ctx, schemaMigrationsDDL); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	done, err := appliedVersions(ctx, session)
	if err != nil {
		return nil, err
	}

	pending := pendingMigrations(files, done)
	applied := make([]string, 0, len(pending))
	for _, file := range pending {
		if err := applyMigration(ctx, session, migrationsDir, file); err != nil {
			return applied, err
		}
		logger.Info("ledger migration applied", logger.Fields{"version": file})
		applied = append(applied, file)
	}
	return applied, nil
}

const schemaMigrationsDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func applyMigration(ctx context.Context, session *sql.Conn, migrationsDir, file string) error {
	body, err := os.ReadFile(filepath.Join(migrationsDir, file))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", file, err)
	}

	tx, err := session.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", file, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("execute migration %s: %w", file, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, file); err != nil {
		return fmt.Errorf("record migration %s: %w", file, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", file, err)
	}
	return nil
}

func appliedVersions(ctx context.Context, session *sql.Conn) (map[string]bool, error) {
	rows, err := session.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		done[version] = true
	}
	return done, rows.Err()
}

func pendingMigrations(files []string, done map[string]bool) []string {
	return slices.DeleteFunc(slices.Clone(files), func(file string) bool { return done[file] })
}

// migrationFiles lists the .sql files in dir, sorted by name.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.EqualFold(filepath.Ext(entry.Name()), ".sql") {
			files = append(files, entry.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}
