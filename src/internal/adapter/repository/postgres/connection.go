package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/logger"
	_ "github.com/lib/pq"
)

// Pool sizes the shared connection pool. Zero fields take the ledger defaults.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

func (p Pool) withDefaults() Pool {
	if p.MaxOpen <= 0 {
		p.MaxOpen = 30
	}
	if p.MaxIdle <= 0 || p.MaxIdle > p.MaxOpen {
		p.MaxIdle = min(20, p.MaxOpen)
	}
	if p.MaxIdleTime <= 0 {
		p.MaxIdleTime = 5 * time.Minute
	}
	if p.MaxLifetime <= 0 {
		p.MaxLifetime = 15 * time.Minute
	}
	return p
}

// Open connects to the ledger database and verifies it answers before returning.
func Open(ctx context.Context, dsn string, pool Pool) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	pool = pool.withDefaults()
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("reach ledger database: %w", err)
	}

	logger.Info("ledger database connected", logger.Fields{
		"maxOpenConns": pool.MaxOpen,
		"maxIdleConns": pool.MaxIdle,
	})
	return db, nil
}
