package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCardNumberShape(t *testing.T) {
	assert.True(t, IsCardNumberShape("1700000000123456"))
	assert.False(t, IsCardNumberShape("170000000012345"))
	assert.False(t, IsCardNumberShape("17000000001234567"))
	assert.False(t, IsCardNumberShape("17000000001234a6"))
	assert.False(t, IsCardNumberShape("１７00000000123456"))
}

func TestCustomerCanOpenProducts(t *testing.T) {
	assert.True(t, Customer{Status: CustomerStatusRegular}.CanOpenProducts())
	assert.True(t, Customer{Status: CustomerStatusSuspected}.CanOpenProducts())
	assert.False(t, Customer{Status: CustomerStatusBlocked}.CanOpenProducts())
	assert.False(t, Customer{Status: CustomerStatusDeleted}.CanOpenProducts())
}

func TestTransactionIsTerminal(t *testing.T) {
	assert.False(t, Transaction{Status: TransactionStatusPending}.IsTerminal())
	assert.True(t, Transaction{Status: TransactionStatusCompleted}.IsTerminal())
	assert.True(t, Transaction{Status: TransactionStatusFailed}.IsTerminal())
}

func TestDefaultLimitPolicy(t *testing.T) {
	limits := DefaultLimitPolicy()
	assert.Equal(t, 3, limits.MaxAccountsPerCustomer)
	assert.Equal(t, 2, limits.MaxCardsPerAccount)
	assert.Equal(t, "1000", limits.DailyTransactionLimit.String())
	assert.Equal(t, "50", limits.MinAcceptableAccountBalance.String())
	assert.Equal(t, "10000", limits.MonthlyTransactionSuspectLimit.String())
}
