package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	// GetByAccountNumberForUpdate locks the row until the surrounding unit of work ends.
	GetByAccountNumberForUpdate(ctx context.Context, accountNumber string) (domain.Account, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	CountByCustomerIDAndStatus(ctx context.Context, customerID int64, status domain.AccountStatus) (int, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error)
	ListByStatus(ctx context.Context, status domain.AccountStatus, page commons.PageRequest) ([]domain.Account, int64, error)
	ListAll(ctx context.Context, page commons.PageRequest) ([]domain.Account, int64, error)
	UpdateStatus(ctx context.Context, accountNumber string, status domain.AccountStatus, expiryDate time.Time) error
	UpdateBalance(ctx context.Context, accountNumber string, balance decimal.Decimal) error
	// ExpireBefore flips every non-expired account whose expiry date is before cutoff.
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
