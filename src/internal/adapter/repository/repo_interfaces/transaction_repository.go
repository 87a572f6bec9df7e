package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	GetByID(ctx context.Context, id string) (domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, id string) (domain.Transaction, error)
	ListByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error)
	ListByCustomerID(ctx context.Context, customerID int64, page commons.PageRequest) ([]domain.Transaction, int64, error)
	ListAll(ctx context.Context, page commons.PageRequest) ([]domain.Transaction, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, transactionDate time.Time) error
	// SumCompletedDebits totals COMPLETED records of txType in [from, to) whose debit account belongs to customerID.
	SumCompletedDebits(ctx context.Context, customerID int64, txType domain.TransactionType, from, to time.Time) (decimal.Decimal, error)
	// SumCompletedActivity totals COMPLETED records in [from, to) where customerID owns either side, each record once.
	SumCompletedActivity(ctx context.Context, customerID int64, from, to time.Time) (decimal.Decimal, error)
}
