package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/events"
	"github.com/api-sage/bank-ledger/src/internal/adapter/lock"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementServiceRunOnceLeavesNothingPending(t *testing.T) {
	f := newFixture(t)
	payer := f.customer(domain.CustomerStatusRegular)
	payee := f.customer(domain.CustomerStatusRegular)
	rich := f.account(payer, "500", domain.AccountStatusActive)
	poor := f.account(payer, "5", domain.AccountStatusActive)
	target := f.account(payee, "0", domain.AccountStatusActive)
	closed := f.account(payee, "0", domain.AccountStatusExpired)
	earlier := f.now.AddDate(0, 0, -1)

	ok := f.transaction(rich, target, "100", domain.TransactionStatusPending, domain.TransactionTypeTransfer, earlier)
	broke := f.transaction(poor, target, "10", domain.TransactionStatusPending, domain.TransactionTypeTransfer, earlier)
	blocked := f.transaction(rich, closed, "10", domain.TransactionStatusPending, domain.TransactionTypeTransfer, earlier)
	orphan := f.transaction("ACC404", target, "10", domain.TransactionStatusPending, domain.TransactionTypeTransfer, earlier)
	done := f.transaction(rich, target, "1", domain.TransactionStatusCompleted, domain.TransactionTypeTransfer, earlier)

	resp, err := f.settlementSvc.RunOnce(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Data.Processed)
	assert.Equal(t, 1, resp.Data.Completed)
	assert.Equal(t, 3, resp.Data.Failed)

	pending, err := f.transactions.ListByStatus(f.ctx, domain.TransactionStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	for id, want := range map[string]domain.TransactionStatus{
		ok:      domain.TransactionStatusCompleted,
		broke:   domain.TransactionStatusFailed,
		blocked: domain.TransactionStatusFailed,
		orphan:  domain.TransactionStatusFailed,
		done:    domain.TransactionStatusCompleted,
	} {
		tx, err := f.transactions.GetByID(f.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, tx.Status, id)
	}

	settled, err := f.transactions.GetByID(f.ctx, ok)
	require.NoError(t, err)
	assert.Equal(t, f.now, settled.TransactionDate)

	requireBalance(t, f, rich, "400")
	requireBalance(t, f, poor, "5")
	requireBalance(t, f, target, "100")
	requireBalance(t, f, closed, "0")

	assert.Len(t, f.events.OfType(events.EventTransactionCompleted), 1)
	assert.Len(t, f.events.OfType(events.EventTransactionFailed), 3)
}

func TestSettlementServiceFlagsSuspectedDebitCustomer(t *testing.T) {
	f := newFixture(t)
	payer := f.customer(domain.CustomerStatusRegular)
	payee := f.customer(domain.CustomerStatusRegular)
	from := f.account(payer, "100", domain.AccountStatusActive)
	to := f.account(payee, "0", domain.AccountStatusActive)
	f.transaction(from, to, "9990", domain.TransactionStatusCompleted, domain.TransactionTypeTransfer, f.now.AddDate(0, 0, -5))
	f.transaction(from, to, "20", domain.TransactionStatusPending, domain.TransactionTypeTransfer, f.now.AddDate(0, 0, -1))

	_, err := f.settlementSvc.RunOnce(f.ctx)
	require.NoError(t, err)

	customer, err := f.customers.GetByID(f.ctx, payer)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerStatusSuspected, customer.Status)
	assert.Len(t, f.events.OfType(events.EventCustomerSuspected), 1)
}

func TestSettlementServiceEmptyRun(t *testing.T) {
	f := newFixture(t)

	resp, err := f.settlementSvc.RunOnce(f.ctx)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Zero(t, resp.Data.Processed)
}

func TestSettlementServiceDrainsBatchAfterCancel(t *testing.T) {
	f := newFixture(t)
	payer := f.customer(domain.CustomerStatusRegular)
	from := f.account(payer, "100", domain.AccountStatusActive)
	to := f.account(payer, "0", domain.AccountStatusActive)
	f.transaction(from, to, "10", domain.TransactionStatusPending, domain.TransactionTypeTransfer, f.now)
	f.transaction(from, to, "15", domain.TransactionStatusPending, domain.TransactionTypeTransfer, f.now)

	ctx, cancel := context.WithCancel(f.ctx)
	cancel()

	resp, err := f.settlementSvc.RunOnce(ctx)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Completed)

	pending, err := f.transactions.ListByStatus(f.ctx, domain.TransactionStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
	requireBalance(t, f, from, "75")
	requireBalance(t, f, to, "25")
}

func TestGuardedSettlementRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	locker := lock.NewLocalLocker()
	guarded := services.NewGuardedSettlement(f.settlementSvc, locker, time.Minute)

	release, err := locker.Acquire(f.ctx, services.SettlementLockName, time.Minute)
	require.NoError(t, err)

	resp, err := guarded.RunOnce(f.ctx)
	require.ErrorIs(t, err, commons.ErrInvalidState)
	assert.False(t, resp.Success)

	require.NoError(t, release(f.ctx))
	resp, err = guarded.RunOnce(f.ctx)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
