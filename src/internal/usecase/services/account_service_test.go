package services_test

import (
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountServiceCreateAccountSuccess(t *testing.T) {
	f := newFixture(t)
	customerID := f.customer(domain.CustomerStatusRegular)

	resp, err := f.accountSvc.CreateAccount(f.ctx, customerID)
	require.NoError(t, err)
	require.True(t, resp.Success)

	account, err := f.accounts.GetByAccountNumber(f.ctx, resp.Data.AccountNumber)
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
	assert.Equal(t, domain.AccountStatusActive, account.Status)
	assert.Equal(t, f.now.AddDate(10, 0, 0), account.ExpiryDate)
	assert.Regexp(t, `^ACC\d{13}$`, account.AccountNumber)
}

func TestAccountServiceCreateAccountRejections(t *testing.T) {
	f := newFixture(t)
	blocked := f.customer(domain.CustomerStatusBlocked)
	deleted := f.customer(domain.CustomerStatusDeleted)
	full := f.customer(domain.CustomerStatusRegular)
	for i := 0; i < 3; i++ {
		f.account(full, "0", domain.AccountStatusActive)
	}

	cases := []struct {
		name       string
		customerID int64
		want       error
	}{
		{"unknown customer", 9999, commons.ErrNotFound},
		{"blocked customer", blocked, commons.ErrInvalidState},
		{"deleted customer", deleted, commons.ErrInvalidState},
		{"account cap reached", full, commons.ErrLimitExceeded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := f.accountSvc.CreateAccount(f.ctx, tc.customerID)
			require.ErrorIs(t, err, tc.want)
			assert.False(t, resp.Success)
		})
	}
}

func TestAccountServiceCreateAccountCapCountsOnlyActive(t *testing.T) {
	f := newFixture(t)
	customerID := f.customer(domain.CustomerStatusRegular)
	f.account(customerID, "0", domain.AccountStatusActive)
	f.account(customerID, "0", domain.AccountStatusActive)
	f.account(customerID, "0", domain.AccountStatusExpired)

	_, err := f.accountSvc.CreateAccount(f.ctx, customerID)
	require.NoError(t, err)
}

func TestAccountServiceCreateAccountRetriesOnCollision(t *testing.T) {
	f := newFixture(t)
	customerID := f.customer(domain.CustomerStatusRegular)
	taken := f.account(customerID, "0", domain.AccountStatusExpired)

	candidates := []string{taken, taken, "ACC0000000000999"}
	calls := 0
	f.accountSvc.WithNumberGenerator(services.GeneratorFunc(func() string {
		next := candidates[calls]
		calls++
		return next
	}))

	resp, err := f.accountSvc.CreateAccount(f.ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, "ACC0000000000999", resp.Data.AccountNumber)
	assert.Equal(t, 3, calls)
}

func TestAccountServiceActivateAccount(t *testing.T) {
	f := newFixture(t)
	owner := f.customer(domain.CustomerStatusRegular)
	expired := f.account(owner, "0", domain.AccountStatusExpired)

	resp, err := f.accountSvc.ActivateAccount(f.ctx, expired, owner)
	require.NoError(t, err)
	assert.Equal(t, string(domain.AccountStatusActive), resp.Data.Status)

	account, err := f.accounts.GetByAccountNumber(f.ctx, expired)
	require.NoError(t, err)
	assert.Equal(t, f.now.AddDate(1, 0, 0), account.ExpiryDate)
}

func TestAccountServiceActivateAccountRejections(t *testing.T) {
	f := newFixture(t)
	owner := f.customer(domain.CustomerStatusRegular)
	stranger := f.customer(domain.CustomerStatusRegular)
	active := f.account(owner, "0", domain.AccountStatusActive)
	deleted := f.account(owner, "0", domain.AccountStatusDeleted)
	expired := f.account(owner, "0", domain.AccountStatusExpired)

	cases := []struct {
		name    string
		account string
		caller  int64
		want    error
	}{
		{"missing", "ACC404", owner, commons.ErrNotFound},
		{"not owner", expired, stranger, commons.ErrUnauthorized},
		{"deleted", deleted, owner, commons.ErrInvalidState},
		{"already active", active, owner, commons.ErrInvalidState},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.accountSvc.ActivateAccount(f.ctx, tc.account, tc.caller)
			require.ErrorIs(t, err, tc.want)
		})
	}

	account, err := f.accounts.GetByAccountNumber(f.ctx, expired)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusExpired, account.Status)
}

func TestAccountServiceGetAccountRestrictsToOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.customer(domain.CustomerStatusRegular)
	stranger := f.customer(domain.CustomerStatusRegular)
	account := f.account(owner, "12.50", domain.AccountStatusActive)

	resp, err := f.accountSvc.GetAccount(f.ctx, account, &owner)
	require.NoError(t, err)
	assert.Equal(t, "12.5", resp.Data.Balance.String())

	_, err = f.accountSvc.GetAccount(f.ctx, account, &stranger)
	require.ErrorIs(t, err, commons.ErrUnauthorized)

	_, err = f.accountSvc.GetAccount(f.ctx, account, nil)
	require.NoError(t, err)
}

func TestAccountServiceListings(t *testing.T) {
	f := newFixture(t)
	owner := f.customer(domain.CustomerStatusRegular)
	other := f.customer(domain.CustomerStatusRegular)
	f.account(owner, "0", domain.AccountStatusActive)
	f.account(owner, "0", domain.AccountStatusExpired)
	f.account(other, "0", domain.AccountStatusActive)

	mine, err := f.accountSvc.ListCustomerAccounts(f.ctx, owner)
	require.NoError(t, err)
	assert.Len(t, *mine.Data, 2)

	active, err := f.accountSvc.ListAccountsByStatus(f.ctx, "active", commons.PageRequest{Size: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, active.Data.TotalElements)
	assert.Equal(t, 2, active.Data.TotalPages)
	assert.Len(t, active.Data.Items, 1)

	all, err := f.accountSvc.ListAllAccounts(f.ctx, commons.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Data.TotalElements)

	_, err = f.accountSvc.ListAccountsByStatus(f.ctx, "FROZEN", commons.PageRequest{})
	require.ErrorIs(t, err, commons.ErrValidation)
}

func TestAccountServiceExpireAccounts(t *testing.T) {
	f := newFixture(t)
	owner := f.customer(domain.CustomerStatusRegular)
	stale := f.account(owner, "0", domain.AccountStatusActive)
	fresh := f.account(owner, "0", domain.AccountStatusActive)
	deleted := f.account(owner, "0", domain.AccountStatusDeleted)
	require.NoError(t, f.accounts.UpdateStatus(f.ctx, stale, domain.AccountStatusActive, f.now.AddDate(0, 0, -1)))
	require.NoError(t, f.accounts.UpdateStatus(f.ctx, deleted, domain.AccountStatusDeleted, f.now.AddDate(0, 0, -3)))
	// Expiring later today is not yet expired.
	require.NoError(t, f.accounts.UpdateStatus(f.ctx, fresh, domain.AccountStatusActive, f.now.Add(time.Hour)))

	resp, err := f.accountSvc.ExpireAccounts(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Data.ExpiredAccounts)

	for number, want := range map[string]domain.AccountStatus{
		stale:   domain.AccountStatusExpired,
		deleted: domain.AccountStatusExpired,
		fresh:   domain.AccountStatusActive,
	} {
		account, err := f.accounts.GetByAccountNumber(f.ctx, number)
		require.NoError(t, err)
		assert.Equal(t, want, account.Status, number)
	}
}

func TestExpirySweeperCombinesSweeps(t *testing.T) {
	f := newFixture(t)
	owner := f.customer(domain.CustomerStatusRegular)
	account := f.account(owner, "0", domain.AccountStatusActive)
	card := f.card(account, domain.CardStatusActive)
	require.NoError(t, f.accounts.UpdateStatus(f.ctx, account, domain.AccountStatusActive, f.now.AddDate(0, 0, -1)))
	require.NoError(t, f.cards.UpdateStatus(f.ctx, card, domain.CardStatusActive, f.now.AddDate(0, 0, -1)))

	resp, err := services.NewExpirySweeper(f.accountSvc, f.cardSvc).Sweep(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Data.ExpiredAccounts)
	assert.EqualValues(t, 1, resp.Data.ExpiredCards)
	assert.Equal(t, "2026-03-10T00:00:00Z", resp.Data.Cutoff)
}
