package models

import (
	"time"

	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	CustomerID int64 `json:"customerId"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string
	if r.CustomerID <= 0 {
		errs = append(errs, "customerId must be a positive number")
	}
	return validationError(errs)
}

type AccountResponse struct {
	AccountNumber string          `json:"accountNumber"`
	CustomerID    int64           `json:"customerId"`
	Balance       decimal.Decimal `json:"balance"`
	OpeningDate   string          `json:"openingDate"`
	ExpiryDate    string          `json:"expiryDate"`
	Status        string          `json:"status"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: account.AccountNumber,
		CustomerID:    account.CustomerID,
		Balance:       account.Balance,
		OpeningDate:   account.OpeningDate.Format(time.RFC3339),
		ExpiryDate:    account.ExpiryDate.Format(dateLayout),
		Status:        string(account.Status),
	}
}

type ExpirySweepResponse struct {
	ExpiredAccounts int64  `json:"expiredAccounts"`
	ExpiredCards    int64  `json:"expiredCards"`
	Cutoff          string `json:"cutoff"`
}
