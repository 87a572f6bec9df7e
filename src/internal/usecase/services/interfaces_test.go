package services_test

import (
	"github.com/api-sage/bank-ledger/src/internal/usecase/service_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/usecase/services"
)

var (
	_ service_interfaces.AccountService    = (*services.AccountService)(nil)
	_ service_interfaces.CardService       = (*services.CardService)(nil)
	_ service_interfaces.TransferService   = (*services.TransferService)(nil)
	_ service_interfaces.CustomerService   = (*services.CustomerService)(nil)
	_ service_interfaces.SuspicionService  = (*services.SuspicionService)(nil)
	_ service_interfaces.SettlementService = (*services.SettlementService)(nil)
	_ service_interfaces.SettlementService = (*services.GuardedSettlement)(nil)
	_ service_interfaces.ExpirySweeper     = (*services.ExpirySweeper)(nil)
)
