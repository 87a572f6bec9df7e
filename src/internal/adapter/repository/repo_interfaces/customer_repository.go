package repo_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/src/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id int64) (domain.Customer, error)
	// GetByIDForUpdate serializes units of work acting on behalf of the same customer.
	GetByIDForUpdate(ctx context.Context, id int64) (domain.Customer, error)
	ExistsByFinCode(ctx context.Context, finCode string) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.CustomerStatus) error
}
