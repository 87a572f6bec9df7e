package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/commons"
)

// CardService methods taking a callerID restrict the call to that customer's
// cards when the pointer is non-nil.
type CardService interface {
	CreateCard(ctx context.Context, accountNumber string, callerID *int64) (commons.Response[models.CardResponse], error)
	ActivateCard(ctx context.Context, cardNumber string, callerID *int64) (commons.Response[models.ActivateCardResponse], error)
	ListCardsByAccount(ctx context.Context, accountNumber string, callerID *int64) (commons.Response[[]models.CardResponse], error)
	ListCardsByAccountPaged(ctx context.Context, accountNumber string, page commons.PageRequest) (commons.Response[commons.Page[models.CardResponse]], error)
	ListCustomerCards(ctx context.Context, customerID int64) (commons.Response[[]models.CardResponse], error)
	ListCustomerCardsPaged(ctx context.Context, customerID int64, page commons.PageRequest) (commons.Response[commons.Page[models.CardResponse]], error)
	ListCardsByStatus(ctx context.Context, status string, page commons.PageRequest) (commons.Response[commons.Page[models.CardResponse]], error)
	ListAllCards(ctx context.Context, page commons.PageRequest) (commons.Response[commons.Page[models.CardResponse]], error)
	ExpireCards(ctx context.Context) (commons.Response[models.ExpirySweepResponse], error)
}
