package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/commons"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CustomerResponse], error)
	GetCustomer(ctx context.Context, id int64) (commons.Response[models.CustomerResponse], error)
}

type SuspicionService interface {
	Evaluate(ctx context.Context, customerID int64) (commons.Response[models.SuspicionResponse], error)
}
