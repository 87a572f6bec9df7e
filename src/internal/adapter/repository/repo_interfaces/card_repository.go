package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
)

type CardRepository interface {
	Create(ctx context.Context, card domain.Card) (domain.Card, error)
	GetByCardNumber(ctx context.Context, cardNumber string) (domain.Card, error)
	// GetByCardNumberForUpdate locks the row until the surrounding unit of work ends.
	GetByCardNumberForUpdate(ctx context.Context, cardNumber string) (domain.Card, error)
	ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error)
	CountByAccountNumber(ctx context.Context, accountNumber string) (int, error)
	ListByAccountNumber(ctx context.Context, accountNumber string) ([]domain.Card, error)
	ListByAccountNumberPaged(ctx context.Context, accountNumber string, page commons.PageRequest) ([]domain.Card, int64, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Card, error)
	ListByCustomerIDPaged(ctx context.Context, customerID int64, page commons.PageRequest) ([]domain.Card, int64, error)
	ListByStatus(ctx context.Context, status domain.CardStatus, page commons.PageRequest) ([]domain.Card, int64, error)
	ListAll(ctx context.Context, page commons.PageRequest) ([]domain.Card, int64, error)
	UpdateStatus(ctx context.Context, cardNumber string, status domain.CardStatus, expiryDate time.Time) error
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
