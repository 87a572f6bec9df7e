package models

import (
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	DebitCardNumber  string          `json:"debitCardNumber"`
	CreditCardNumber string          `json:"creditCardNumber"`
	Amount           decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	debit := strings.TrimSpace(r.DebitCardNumber)
	credit := strings.TrimSpace(r.CreditCardNumber)
	if !domain.IsCardNumberShape(debit) {
		errs = append(errs, "debitCardNumber must be exactly 16 digits")
	}
	if !domain.IsCardNumberShape(credit) {
		errs = append(errs, "creditCardNumber must be exactly 16 digits")
	}
	if debit != "" && debit == credit {
		errs = append(errs, "debitCardNumber and creditCardNumber must differ")
	}
	errs = append(errs, amountProblems(r.Amount)...)

	return validationError(errs)
}

type DepositRequest struct {
	CardNumber string          `json:"cardNumber"`
	Amount     decimal.Decimal `json:"amount"`
}

func (r DepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.CardNumber) == "" {
		errs = append(errs, "cardNumber is required")
	}
	errs = append(errs, amountProblems(r.Amount)...)

	return validationError(errs)
}

type TransactionResponse struct {
	ID                  string          `json:"id"`
	DebitAccountNumber  string          `json:"debitAccountNumber"`
	CreditAccountNumber string          `json:"creditAccountNumber"`
	DebitCardNumber     string          `json:"debitCardNumber,omitempty"`
	CreditCardNumber    string          `json:"creditCardNumber,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	TransactionDate     string          `json:"transactionDate"`
	Status              string          `json:"status"`
	Type                string          `json:"type"`
}

func NewTransactionResponse(tx domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                  tx.ID,
		DebitAccountNumber:  tx.DebitAccountNumber,
		CreditAccountNumber: tx.CreditAccountNumber,
		Amount:              tx.Amount,
		TransactionDate:     tx.TransactionDate.Format(time.RFC3339),
		Status:              string(tx.Status),
		Type:                string(tx.Type),
	}
	if tx.DebitCardNumber != nil {
		resp.DebitCardNumber = *tx.DebitCardNumber
	}
	if tx.CreditCardNumber != nil {
		resp.CreditCardNumber = *tx.CreditCardNumber
	}
	return resp
}

type SettlementSummaryResponse struct {
	Processed int `json:"processed"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

type SuspicionResponse struct {
	CustomerID   int64           `json:"customerId"`
	MonthlyTotal decimal.Decimal `json:"monthlyTotal"`
	Status       string          `json:"status"`
	Flagged      bool            `json:"flagged"`
}

// amountProblems enforces the NUMERIC(19,2) column shape so nothing is rounded on write.
func amountProblems(amount decimal.Decimal) []string {
	var errs []string
	if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if !amount.Equal(amount.Truncate(2)) {
		errs = append(errs, "amount must have at most two decimal places")
	}
	return errs
}
