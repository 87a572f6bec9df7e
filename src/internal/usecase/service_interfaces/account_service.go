package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, customerID int64) (commons.Response[models.AccountResponse], error)
	ActivateAccount(ctx context.Context, accountNumber string, callerID int64) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountNumber string, callerID *int64) (commons.Response[models.AccountResponse], error)
	ListCustomerAccounts(ctx context.Context, customerID int64) (commons.Response[[]models.AccountResponse], error)
	ListAccountsByStatus(ctx context.Context, status string, page commons.PageRequest) (commons.Response[commons.Page[models.AccountResponse]], error)
	ListAllAccounts(ctx context.Context, page commons.PageRequest) (commons.Response[commons.Page[models.AccountResponse]], error)
	ExpireAccounts(ctx context.Context) (commons.Response[models.ExpirySweepResponse], error)
}
