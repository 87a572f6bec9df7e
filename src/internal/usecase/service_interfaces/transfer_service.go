package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/commons"
)

type TransferService interface {
	Transfer(ctx context.Context, req models.TransferRequest, callerID int64) (commons.Response[models.TransactionResponse], error)
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error)
	GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error)
	ListCustomerTransactions(ctx context.Context, customerID int64, page commons.PageRequest) (commons.Response[commons.Page[models.TransactionResponse]], error)
	ListAllTransactions(ctx context.Context, page commons.PageRequest) (commons.Response[commons.Page[models.TransactionResponse]], error)
}
