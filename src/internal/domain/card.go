package domain

import "time"

type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusExpired CardStatus = "EXPIRED"
)

// CardValidity is applied in years on issue and on every activation.
const CardValidity = 5

const CardNumberLength = 16

type Card struct {
	CardNumber    string
	AccountNumber string
	IssueDate     time.Time
	ExpiryDate    time.Time
	Status        CardStatus
}

func (c Card) IsActive() bool {
	return c.Status == CardStatusActive
}

// IsCardNumberShape reports whether s is exactly sixteen ASCII digits.
func IsCardNumberShape(s string) bool {
	if len(s) != CardNumberLength {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
