package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/commons"
)

type SettlementService interface {
	RunOnce(ctx context.Context) (commons.Response[models.SettlementSummaryResponse], error)
}

type ExpirySweeper interface {
	Sweep(ctx context.Context) (commons.Response[models.ExpirySweepResponse], error)
}
