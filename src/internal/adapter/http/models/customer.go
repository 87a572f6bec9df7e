package models

import (
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/domain"
)

type CreateCustomerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	BirthDate   string `json:"birthDate"`
	FinCode     string `json:"finCode"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r CreateCustomerRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, "lastName is required")
	}
	if strings.TrimSpace(r.BirthDate) == "" {
		errs = append(errs, "birthDate is required")
	} else if _, err := time.Parse(dateLayout, strings.TrimSpace(r.BirthDate)); err != nil {
		errs = append(errs, "birthDate must be in YYYY-MM-DD format")
	}
	if strings.TrimSpace(r.FinCode) == "" {
		errs = append(errs, "finCode is required")
	}
	phone := strings.TrimPrefix(strings.TrimSpace(r.PhoneNumber), "+")
	if !digitsOnly(phone) {
		errs = append(errs, "phoneNumber must contain digits only")
	}

	return validationError(errs)
}

type CustomerResponse struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	BirthDate        string `json:"birthDate"`
	FinCode          string `json:"finCode"`
	PhoneNumber      string `json:"phoneNumber"`
	RegistrationDate string `json:"registrationDate"`
	Status           string `json:"status"`
}

func NewCustomerResponse(customer domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               customer.ID,
		FirstName:        customer.FirstName,
		LastName:         customer.LastName,
		BirthDate:        customer.BirthDate.Format(dateLayout),
		FinCode:          customer.FinCode,
		PhoneNumber:      customer.PhoneNumber,
		RegistrationDate: customer.RegistrationDate.Format(time.RFC3339),
		Status:           string(customer.Status),
	}
}
