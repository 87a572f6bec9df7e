package services_test

import (
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuspicionServiceEvaluateThreshold(t *testing.T) {
	cases := []struct {
		name    string
		amounts []string
		status  domain.CustomerStatus
		want    domain.CustomerStatus
	}{
		{"exactly at limit stays regular", []string{"6000", "4000"}, domain.CustomerStatusRegular, domain.CustomerStatusRegular},
		{"one cent above flags", []string{"6000", "4000.01"}, domain.CustomerStatusRegular, domain.CustomerStatusSuspected},
		{"blocked customer untouched", []string{"20000"}, domain.CustomerStatusBlocked, domain.CustomerStatusBlocked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			customerID := f.customer(tc.status)
			other := f.customer(domain.CustomerStatusRegular)
			mine := f.account(customerID, "0", domain.AccountStatusActive)
			theirs := f.account(other, "0", domain.AccountStatusActive)
			for i, amount := range tc.amounts {
				// Alternate sides so both incoming and outgoing activity count.
				if i%2 == 0 {
					f.transaction(mine, theirs, amount, domain.TransactionStatusCompleted, domain.TransactionTypeTransfer, f.now)
				} else {
					f.transaction(theirs, mine, amount, domain.TransactionStatusCompleted, domain.TransactionTypeTransfer, f.now)
				}
			}

			resp, err := f.suspicionSvc.Evaluate(f.ctx, customerID)
			require.NoError(t, err)
			assert.Equal(t, string(tc.want), resp.Data.Status)

			customer, err := f.customers.GetByID(f.ctx, customerID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, customer.Status)
		})
	}
}

func TestSuspicionServiceIgnoresOldAndIncompleteActivity(t *testing.T) {
	f := newFixture(t)
	customerID := f.customer(domain.CustomerStatusRegular)
	other := f.customer(domain.CustomerStatusRegular)
	mine := f.account(customerID, "0", domain.AccountStatusActive)
	theirs := f.account(other, "0", domain.AccountStatusActive)
	f.transaction(mine, theirs, "9000", domain.TransactionStatusCompleted, domain.TransactionTypeTransfer, f.now.AddDate(0, -1, -1))
	f.transaction(mine, theirs, "9000", domain.TransactionStatusFailed, domain.TransactionTypeTransfer, f.now)
	f.transaction(mine, theirs, "9000", domain.TransactionStatusPending, domain.TransactionTypeTransfer, f.now)
	f.transaction(mine, theirs, "5000", domain.TransactionStatusCompleted, domain.TransactionTypeTransfer, startOfMonthWindow(f))

	resp, err := f.suspicionSvc.Evaluate(f.ctx, customerID)
	require.NoError(t, err)
	assert.False(t, resp.Data.Flagged)
	assert.Equal(t, "5000", resp.Data.MonthlyTotal.String())
}

func TestSuspicionServiceUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	resp, err := f.suspicionSvc.Evaluate(f.ctx, 404)
	require.ErrorIs(t, err, commons.ErrNotFound)
	assert.False(t, resp.Success)
}

// startOfMonthWindow is the first instant still inside the one-month lookback.
func startOfMonthWindow(f *ledgerFixture) time.Time {
	y, m, d := f.now.AddDate(0, -1, 0).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, f.now.Location())
}
