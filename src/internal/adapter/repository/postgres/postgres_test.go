package postgres

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repo_interfaces.CardRepository        = (*CardRepository)(nil)
	_ repo_interfaces.AccountRepository     = (*AccountRepository)(nil)
	_ repo_interfaces.CustomerRepository    = (*CustomerRepository)(nil)
	_ repo_interfaces.TransactionRepository = (*TransactionRepository)(nil)
)

func TestMapWriteErrorDetectsUniqueViolation(t *testing.T) {
	err := mapWriteError("create card", &pq.Error{Code: uniqueViolation, Constraint: "cards_pkey"})
	require.ErrorIs(t, err, commons.ErrDuplicateResource)
	assert.Contains(t, err.Error(), "cards_pkey")

	other := errors.New("connection reset")
	err = mapWriteError("create card", other)
	require.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, commons.ErrDuplicateResource)
}

func TestMigrationFilesSortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_b.sql", "0001_a.SQL", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0000_dir.sql"), 0o700))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.SQL", "0002_b.sql"}, files)
}

func TestMigrationFilesMissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestRepositoryMigrationsParse(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "..", "..", "migrations"))
	require.NoError(t, err)
	assert.Contains(t, files, "0001_init_ledger.sql")
}

func TestPoolDefaults(t *testing.T) {
	got := Pool{}.withDefaults()
	assert.Equal(t, 30, got.MaxOpen)
	assert.Equal(t, 20, got.MaxIdle)
	assert.Equal(t, 5*time.Minute, got.MaxIdleTime)
	assert.Equal(t, 15*time.Minute, got.MaxLifetime)

	got = Pool{MaxOpen: 4, MaxIdle: 10}.withDefaults()
	assert.Equal(t, 4, got.MaxOpen)
	assert.Equal(t, 4, got.MaxIdle)
}

func TestPendingMigrationsSkipsApplied(t *testing.T) {
	files := []string{"0001_init_ledger.sql", "0002_indexes.sql", "0003_audit.sql"}
	got := pendingMigrations(files, map[string]bool{"0001_init_ledger.sql": true, "0003_audit.sql": true})
	assert.Equal(t, []string{"0002_indexes.sql"}, got)
	assert.Len(t, files, 3)

	assert.Empty(t, pendingMigrations(files, map[string]bool{
		"0001_init_ledger.sql": true, "0002_indexes.sql": true, "0003_audit.sql": true,
	}))
}

func TestNullString(t *testing.T) {
	assert.False(t, nullString(nil).Valid)

	value := "4000000000000001"
	got := nullString(&value)
	assert.True(t, got.Valid)
	assert.Equal(t, value, got.String)
}
