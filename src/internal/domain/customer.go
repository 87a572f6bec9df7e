package domain

import "time"

type CustomerStatus string

const (
	CustomerStatusRegular   CustomerStatus = "REGULAR"
	CustomerStatusSuspected CustomerStatus = "SUSPECTED"
	CustomerStatusBlocked   CustomerStatus = "BLOCKED"
	CustomerStatusDeleted   CustomerStatus = "DELETED"
)

type Customer struct {
	ID               int64
	FirstName        string
	LastName         string
	BirthDate        time.Time
	FinCode          string
	PhoneNumber      string
	RegistrationDate time.Time
	Status           CustomerStatus
}

// CanOpenProducts is false for customers that may not receive new accounts.
func (c Customer) CanOpenProducts() bool {
	return c.Status != CustomerStatusDeleted && c.Status != CustomerStatusBlocked
}
