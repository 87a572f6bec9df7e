package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

type TransactionType string

const (
	TransactionTypeDebit    TransactionType = "DEBIT"
	TransactionTypeCredit   TransactionType = "CREDIT"
	TransactionTypeTransfer TransactionType = "TRANSFER"
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
)

type Transaction struct {
	ID                  string
	DebitAccountNumber  string
	CreditAccountNumber string
	DebitCardNumber     *string
	CreditCardNumber    *string
	Amount              decimal.Decimal
	TransactionDate     time.Time
	Status              TransactionStatus
	Type                TransactionType
}

// IsTerminal reports whether the record can no longer change status.
func (t Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusFailed
}
