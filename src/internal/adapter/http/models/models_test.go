package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
)

func TestTransferRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     TransferRequest
		wantErr string
	}{
		{"valid", TransferRequest{"4000000000000001", "4000000000000002", decimal.NewFromInt(10)}, ""},
		{"short debit", TransferRequest{"400", "4000000000000002", decimal.NewFromInt(10)}, "debitCardNumber must be exactly 16 digits"},
		{"letters in credit", TransferRequest{"4000000000000001", "40000000000000ab", decimal.NewFromInt(10)}, "creditCardNumber must be exactly 16 digits"},
		{"same card", TransferRequest{"4000000000000001", "4000000000000001", decimal.NewFromInt(10)}, "must differ"},
		{"zero amount", TransferRequest{"4000000000000001", "4000000000000002", decimal.Zero}, "amount must be greater than zero"},
		{"negative amount", TransferRequest{"4000000000000001", "4000000000000002", decimal.NewFromInt(-1)}, "amount must be greater than zero"},
		{"two decimals", TransferRequest{"4000000000000001", "4000000000000002", decimal.RequireFromString("10.05")}, ""},
		{"trailing zero decimals", TransferRequest{"4000000000000001", "4000000000000002", decimal.RequireFromString("10.500")}, ""},
		{"sub-cent amount", TransferRequest{"4000000000000001", "4000000000000002", decimal.RequireFromString("10.005")}, "amount must have at most two decimal places"},
		{"below one cent", TransferRequest{"4000000000000001", "4000000000000002", decimal.RequireFromString("0.001")}, "amount must have at most two decimal places"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, commons.ErrValidation)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestCreateCustomerRequestValidateCollectsAllProblems(t *testing.T) {
	err := CreateCustomerRequest{BirthDate: "12/04/1990", PhoneNumber: "+99450-123"}.Validate()
	require.ErrorIs(t, err, commons.ErrValidation)
	for _, want := range []string{
		"firstName is required",
		"lastName is required",
		"birthDate must be in YYYY-MM-DD format",
		"finCode is required",
		"phoneNumber must contain digits only",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestDepositAndAccountRequestValidate(t *testing.T) {
	require.NoError(t, DepositRequest{CardNumber: "4000000000000001", Amount: decimal.NewFromInt(1)}.Validate())
	require.ErrorIs(t, DepositRequest{Amount: decimal.NewFromInt(1)}.Validate(), commons.ErrValidation)
	for _, amount := range []string{"10.005", "0.001"} {
		err := DepositRequest{CardNumber: "4000000000000001", Amount: decimal.RequireFromString(amount)}.Validate()
		require.ErrorIs(t, err, commons.ErrValidation, amount)
		assert.Contains(t, err.Error(), "at most two decimal places")
	}

	require.NoError(t, CreateAccountRequest{CustomerID: 1}.Validate())
	require.ErrorIs(t, CreateAccountRequest{}.Validate(), commons.ErrValidation)
}

func TestNewTransactionResponseOmitsMissingCards(t *testing.T) {
	card := "4000000000000001"
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	deposit := NewTransactionResponse(domain.Transaction{
		ID:                  "t1",
		DebitAccountNumber:  "ACC1",
		CreditAccountNumber: "ACC1",
		CreditCardNumber:    &card,
		Amount:              decimal.NewFromInt(5),
		TransactionDate:     at,
		Status:              domain.TransactionStatusCompleted,
		Type:                domain.TransactionTypeDeposit,
	})

	assert.Empty(t, deposit.DebitCardNumber)
	assert.Equal(t, card, deposit.CreditCardNumber)
	assert.Equal(t, "2026-03-10T12:00:00Z", deposit.TransactionDate)
	assert.Equal(t, "DEPOSIT", deposit.Type)
}
