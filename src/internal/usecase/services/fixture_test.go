package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/events"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type ledgerFixture struct {
	t   *testing.T
	ctx context.Context
	now time.Time

	store        *memory.Store
	accounts     *memory.AccountRepository
	cards        *memory.CardRepository
	transactions *memory.TransactionRepository
	customers    *memory.CustomerRepository
	events       *events.Recorder

	accountSvc    *services.AccountService
	cardSvc       *services.CardService
	transferSvc   *services.TransferService
	suspicionSvc  *services.SuspicionService
	settlementSvc *services.SettlementService
	customerSvc   *services.CustomerService

	seq int
}

func newFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	f := &ledgerFixture{
		t:      t,
		ctx:    context.Background(),
		now:    fixedNow,
		store:  memory.NewStore(),
		events: &events.Recorder{},
	}
	f.accounts = memory.NewAccountRepository(f.store)
	f.cards = memory.NewCardRepository(f.store)
	f.transactions = memory.NewTransactionRepository(f.store)
	f.customers = memory.NewCustomerRepository(f.store)

	clock := func() time.Time { return f.now }
	limits := domain.DefaultLimitPolicy()

	f.accountSvc = services.NewAccountService(f.accounts, f.customers, f.store, limits).WithClock(clock)
	f.cardSvc = services.NewCardService(f.cards, f.accounts, f.customers, f.store, limits).WithClock(clock)
	f.transferSvc = services.NewTransferService(f.cards, f.accounts, f.transactions, f.customers, f.store, limits, f.events).WithClock(clock)
	f.suspicionSvc = services.NewSuspicionService(f.customers, f.transactions, limits, f.events).WithClock(clock)
	f.settlementSvc = services.NewSettlementService(f.accounts, f.transactions, f.store, f.suspicionSvc, f.events).WithClock(clock)
	f.customerSvc = services.NewCustomerService(f.customers)

	return f
}

func (f *ledgerFixture) customer(status domain.CustomerStatus) int64 {
	f.t.Helper()
	f.seq++

	created, err := f.customers.Create(f.ctx, domain.Customer{
		FirstName:        "Test",
		LastName:         fmt.Sprintf("Customer%d", f.seq),
		FinCode:          fmt.Sprintf("FIN%04d", f.seq),
		PhoneNumber:      fmt.Sprintf("99450000%04d", f.seq),
		RegistrationDate: f.now,
		Status:           status,
	})
	require.NoError(f.t, err)
	return created.ID
}

func (f *ledgerFixture) account(customerID int64, balance string, status domain.AccountStatus) string {
	f.t.Helper()
	f.seq++

	number := fmt.Sprintf("ACC%013d", f.seq)
	_, err := f.accounts.Create(f.ctx, domain.Account{
		AccountNumber: number,
		CustomerID:    customerID,
		Balance:       decimal.RequireFromString(balance),
		OpeningDate:   f.now.AddDate(0, 0, -f.seq),
		ExpiryDate:    f.now.AddDate(10, 0, 0),
		Status:        status,
	})
	require.NoError(f.t, err)
	return number
}

func (f *ledgerFixture) card(accountNumber string, status domain.CardStatus) string {
	f.t.Helper()
	f.seq++

	number := fmt.Sprintf("4000%012d", f.seq)
	_, err := f.cards.Create(f.ctx, domain.Card{
		CardNumber:    number,
		AccountNumber: accountNumber,
		IssueDate:     f.now,
		ExpiryDate:    f.now.AddDate(5, 0, 0),
		Status:        status,
	})
	require.NoError(f.t, err)
	return number
}

func (f *ledgerFixture) transaction(debit, credit, amount string, status domain.TransactionStatus, txType domain.TransactionType, at time.Time) string {
	f.t.Helper()
	f.seq++

	id := fmt.Sprintf("tx-%d", f.seq)
	_, err := f.transactions.Create(f.ctx, domain.Transaction{
		ID:                  id,
		DebitAccountNumber:  debit,
		CreditAccountNumber: credit,
		Amount:              decimal.RequireFromString(amount),
		TransactionDate:     at,
		Status:              status,
		Type:                txType,
	})
	require.NoError(f.t, err)
	return id
}

func (f *ledgerFixture) balance(accountNumber string) decimal.Decimal {
	f.t.Helper()

	account, err := f.accounts.GetByAccountNumber(f.ctx, accountNumber)
	require.NoError(f.t, err)
	return account.Balance
}

func requireBalance(t *testing.T, f *ledgerFixture, accountNumber string, want string) {
	t.Helper()
	got := f.balance(accountNumber)
	require.Truef(t, got.Equal(decimal.RequireFromString(want)), "balance of %s: want %s, got %s", accountNumber, want, got)
}
