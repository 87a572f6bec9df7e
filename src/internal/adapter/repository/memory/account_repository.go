package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	defer r.store.lock(ctx)()

	if _, ok := r.store.accounts[account.AccountNumber]; ok {
		return domain.Account{}, fmt.Errorf("create account %s: %w", account.AccountNumber, commons.ErrDuplicateResource)
	}
	r.store.accounts[account.AccountNumber] = account
	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	defer r.store.lock(ctx)()

	account, ok := r.store.accounts[accountNumber]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) GetByAccountNumberForUpdate(ctx context.Context, accountNumber string) (domain.Account, error) {
	return r.GetByAccountNumber(ctx, accountNumber)
}

func (r *AccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	defer r.store.lock(ctx)()

	_, ok := r.store.accounts[accountNumber]
	return ok, nil
}

func (r *AccountRepository) CountByCustomerIDAndStatus(ctx context.Context, customerID int64, status domain.AccountStatus) (int, error) {
	defer r.store.lock(ctx)()

	count := 0
	for _, account := range r.store.accounts {
		if account.CustomerID == customerID && account.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *AccountRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error) {
	return r.filter(ctx, func(a domain.Account) bool { return a.CustomerID == customerID }), nil
}

func (r *AccountRepository) ListByStatus(ctx context.Context, status domain.AccountStatus, page commons.PageRequest) ([]domain.Account, int64, error) {
	items, total := paginate(r.filter(ctx, func(a domain.Account) bool { return a.Status == status }), page)
	return items, total, nil
}

func (r *AccountRepository) ListAll(ctx context.Context, page commons.PageRequest) ([]domain.Account, int64, error) {
	items, total := paginate(r.filter(ctx, func(domain.Account) bool { return true }), page)
	return items, total, nil
}

func (r *AccountRepository) UpdateStatus(ctx context.Context, accountNumber string, status domain.AccountStatus, expiryDate time.Time) error {
	defer r.store.lock(ctx)()

	account, ok := r.store.accounts[accountNumber]
	if !ok {
		return commons.ErrRecordNotFound
	}
	account.Status = status
	account.ExpiryDate = expiryDate
	r.store.accounts[accountNumber] = account
	return nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, accountNumber string, balance decimal.Decimal) error {
	defer r.store.lock(ctx)()

	account, ok := r.store.accounts[accountNumber]
	if !ok {
		return commons.ErrRecordNotFound
	}
	account.Balance = balance
	r.store.accounts[accountNumber] = account
	return nil
}

func (r *AccountRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	defer r.store.lock(ctx)()

	var flipped int64
	for number, account := range r.store.accounts {
		if account.Status != domain.AccountStatusExpired && account.ExpiryDate.Before(cutoff) {
			account.Status = domain.AccountStatusExpired
			r.store.accounts[number] = account
			flipped++
		}
	}
	return flipped, nil
}

func (r *AccountRepository) filter(ctx context.Context, keep func(domain.Account) bool) []domain.Account {
	defer r.store.lock(ctx)()

	out := make([]domain.Account, 0)
	for _, account := range r.store.accounts {
		if keep(account) {
			out = append(out, account)
		}
	}
	sortByTimeDesc(out,
		func(a domain.Account) time.Time { return a.OpeningDate },
		func(a domain.Account) string { return a.AccountNumber },
	)
	return out
}
