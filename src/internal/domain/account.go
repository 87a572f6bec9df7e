package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "ACTIVE"
	AccountStatusExpired AccountStatus = "EXPIRED"
	AccountStatusDeleted AccountStatus = "DELETED"
)

const (
	AccountValidity           = 10 // years from opening
	AccountReactivationPeriod = 1  // years from manual activation
)

type Account struct {
	AccountNumber string
	CustomerID    int64
	Balance       decimal.Decimal
	OpeningDate   time.Time
	ExpiryDate    time.Time
	Status        AccountStatus
}

func (a Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

func (a Account) OwnedBy(customerID int64) bool {
	return a.CustomerID == customerID
}
