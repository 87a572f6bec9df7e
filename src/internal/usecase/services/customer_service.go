package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
)

type CustomerService struct {
	customerRepo repo_interfaces.CustomerRepository
	now          func() time.Time
}

func NewCustomerService(customerRepo repo_interfaces.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, now: time.Now}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CustomerResponse], error) {
	const op = "customer service create customer"
	logger.Info(op+" request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return fail[models.CustomerResponse](op, "validation failed", err, nil)
	}

	birthDate, _ := time.Parse("2006-01-02", strings.TrimSpace(req.BirthDate))
	customer := domain.Customer{
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		BirthDate:        birthDate,
		FinCode:          strings.ToUpper(strings.TrimSpace(req.FinCode)),
		PhoneNumber:      strings.TrimSpace(req.PhoneNumber),
		RegistrationDate: s.now(),
		Status:           domain.CustomerStatusRegular,
	}

	taken, err := s.customerRepo.ExistsByFinCode(ctx, customer.FinCode)
	if err != nil {
		return fail[models.CustomerResponse](op, "failed to create customer", err, nil)
	}
	if taken {
		err := fmt.Errorf("%w: a customer with this fin code already exists", commons.ErrDuplicateResource)
		return fail[models.CustomerResponse](op, "failed to create customer", err, nil)
	}

	taken, err = s.customerRepo.ExistsByPhoneNumber(ctx, customer.PhoneNumber)
	if err != nil {
		return fail[models.CustomerResponse](op, "failed to create customer", err, nil)
	}
	if taken {
		err := fmt.Errorf("%w: a customer with this phone number already exists", commons.ErrDuplicateResource)
		return fail[models.CustomerResponse](op, "failed to create customer", err, nil)
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		return fail[models.CustomerResponse](op, "failed to create customer", err, nil)
	}

	return succeed(op, "customer created successfully", models.NewCustomerResponse(created), logger.Fields{
		"customerId": created.ID,
	})
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (commons.Response[models.CustomerResponse], error) {
	const op = "customer service get customer"
	fields := logger.Fields{"customerId": id}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return fail[models.CustomerResponse](op, "failed to get customer", translate(err, commons.ErrCustomerNotFound), fields)
	}
	return succeed(op, "customer fetched successfully", models.NewCustomerResponse(customer), fields)
}
