package models

import (
	"time"

	"github.com/api-sage/bank-ledger/src/internal/domain"
)

type CardResponse struct {
	CardNumber    string `json:"cardNumber"`
	AccountNumber string `json:"accountNumber"`
	IssueDate     string `json:"issueDate"`
	ExpiryDate    string `json:"expiryDate"`
	Status        string `json:"status"`
}

func NewCardResponse(card domain.Card) CardResponse {
	return CardResponse{
		CardNumber:    card.CardNumber,
		AccountNumber: card.AccountNumber,
		IssueDate:     card.IssueDate.Format(time.RFC3339),
		ExpiryDate:    card.ExpiryDate.Format(dateLayout),
		Status:        string(card.Status),
	}
}

type ActivateCardResponse struct {
	CardResponse
	PreviousExpiryDate string `json:"previousExpiryDate"`
}
