package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	defer r.store.lock(ctx)()

	if _, ok := r.store.transactions[transaction.ID]; ok {
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", commons.ErrDuplicateResource)
	}
	r.store.transactions[transaction.ID] = transaction
	return transaction, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	defer r.store.lock(ctx)()

	transaction, ok := r.store.transactions[id]
	if !ok {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}
	return transaction, nil
}

func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id string) (domain.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) ListByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	items := r.filter(ctx, func(t domain.Transaction) bool { return t.Status == status })
	// Settlement walks the oldest records first.
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

func (r *TransactionRepository) ListByCustomerID(ctx context.Context, customerID int64, page commons.PageRequest) ([]domain.Transaction, int64, error) {
	items, total := paginate(r.filter(ctx, func(t domain.Transaction) bool {
		return r.owner(t.DebitAccountNumber) == customerID || r.owner(t.CreditAccountNumber) == customerID
	}), page)
	return items, total, nil
}

func (r *TransactionRepository) ListAll(ctx context.Context, page commons.PageRequest) ([]domain.Transaction, int64, error) {
	items, total := paginate(r.filter(ctx, func(domain.Transaction) bool { return true }), page)
	return items, total, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, transactionDate time.Time) error {
	defer r.store.lock(ctx)()

	transaction, ok := r.store.transactions[id]
	if !ok {
		return commons.ErrRecordNotFound
	}
	transaction.Status = status
	transaction.TransactionDate = transactionDate
	r.store.transactions[id] = transaction
	return nil
}

func (r *TransactionRepository) SumCompletedDebits(ctx context.Context, customerID int64, txType domain.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	items := r.filter(ctx, func(t domain.Transaction) bool {
		return t.Status == domain.TransactionStatusCompleted &&
			t.Type == txType &&
			inRange(t.TransactionDate, from, to) &&
			r.owner(t.DebitAccountNumber) == customerID
	})
	return sum(items), nil
}

func (r *TransactionRepository) SumCompletedActivity(ctx context.Context, customerID int64, from, to time.Time) (decimal.Decimal, error) {
	items := r.filter(ctx, func(t domain.Transaction) bool {
		return t.Status == domain.TransactionStatusCompleted &&
			inRange(t.TransactionDate, from, to) &&
			(r.owner(t.DebitAccountNumber) == customerID || r.owner(t.CreditAccountNumber) == customerID)
	})
	return sum(items), nil
}

func (r *TransactionRepository) owner(accountNumber string) int64 {
	account, ok := r.store.accounts[accountNumber]
	if !ok {
		return 0
	}
	return account.CustomerID
}

func (r *TransactionRepository) filter(ctx context.Context, keep func(domain.Transaction) bool) []domain.Transaction {
	defer r.store.lock(ctx)()

	out := make([]domain.Transaction, 0)
	for _, transaction := range r.store.transactions {
		if keep(transaction) {
			out = append(out, transaction)
		}
	}
	sortByTimeDesc(out,
		func(t domain.Transaction) time.Time { return t.TransactionDate },
		func(t domain.Transaction) string { return t.ID },
	)
	return out
}

func sum(items []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
