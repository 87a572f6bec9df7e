package domain

import "github.com/shopspring/decimal"

// LimitPolicy holds the numeric business limits. It is a value and is never mutated.
type LimitPolicy struct {
	MaxAccountsPerCustomer         int
	MaxCardsPerAccount             int
	DailyTransactionLimit          decimal.Decimal
	MinAcceptableAccountBalance    decimal.Decimal
	MonthlyTransactionSuspectLimit decimal.Decimal
	// Not enforced anywhere yet.
	MonthlyTransactionBlockedLimit decimal.Decimal
}

func DefaultLimitPolicy() LimitPolicy {
	return LimitPolicy{
		MaxAccountsPerCustomer:         3,
		MaxCardsPerAccount:             2,
		DailyTransactionLimit:          decimal.RequireFromString("1000.00"),
		MinAcceptableAccountBalance:    decimal.NewFromInt(50),
		MonthlyTransactionSuspectLimit: decimal.RequireFromString("10000.00"),
		MonthlyTransactionBlockedLimit: decimal.RequireFromString("100000.00"),
	}
}
