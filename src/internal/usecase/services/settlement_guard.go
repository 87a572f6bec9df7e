package services

import (
	"context"
	"errors"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/adapter/lock"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/logger"
)

// SettlementLockName is shared by the scheduler and manual triggers.
const SettlementLockName = "settlement"

type settlementRunner interface {
	RunOnce(ctx context.Context) (commons.Response[models.SettlementSummaryResponse], error)
}

// GuardedSettlement refuses to start a run while another one holds the lock.
type GuardedSettlement struct {
	inner  settlementRunner
	locker lock.Locker
	ttl    time.Duration
}

func NewGuardedSettlement(inner settlementRunner, locker lock.Locker, ttl time.Duration) *GuardedSettlement {
	return &GuardedSettlement{inner: inner, locker: locker, ttl: ttl}
}

func (g *GuardedSettlement) RunOnce(ctx context.Context) (commons.Response[models.SettlementSummaryResponse], error) {
	const op = "settlement guard run"

	release, err := g.locker.Acquire(ctx, SettlementLockName, g.ttl)
	if errors.Is(err, lock.ErrLockHeld) {
		return fail[models.SettlementSummaryResponse](op, "settlement already running", commons.InvalidStatef("a settlement run is already in progress"), nil)
	}
	if err != nil {
		return fail[models.SettlementSummaryResponse](op, "failed to acquire settlement lock", err, nil)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Error("settlement guard release failed", err, nil)
		}
	}()

	return g.inner.RunOnce(ctx)
}
