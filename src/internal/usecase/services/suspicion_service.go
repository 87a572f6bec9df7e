package services

import (
	"context"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/events"
	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
)

type SuspicionService struct {
	customerRepo    repo_interfaces.CustomerRepository
	transactionRepo repo_interfaces.TransactionRepository
	limits          domain.LimitPolicy
	publisher       events.Publisher
	now             func() time.Time
}

func NewSuspicionService(
	customerRepo repo_interfaces.CustomerRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	limits domain.LimitPolicy,
	publisher events.Publisher,
) *SuspicionService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &SuspicionService{
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		limits:          limits,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (s *SuspicionService) WithClock(now func() time.Time) *SuspicionService {
	s.now = now
	return s
}

// Evaluate marks a REGULAR customer SUSPECTED when the completed activity over
// the last month, today included, is strictly above the suspect limit.
func (s *SuspicionService) Evaluate(ctx context.Context, customerID int64) (commons.Response[models.SuspicionResponse], error) {
	const op = "suspicion service evaluate"
	fields := logger.Fields{"customerId": customerID}
	logger.Info(op+" request", fields)

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return fail[models.SuspicionResponse](op, "failed to evaluate customer", translate(err, commons.ErrCustomerNotFound), fields)
	}

	today := startOfDay(s.now())
	total, err := s.transactionRepo.SumCompletedActivity(ctx, customerID, today.AddDate(0, -1, 0), today.AddDate(0, 0, 1))
	if err != nil {
		return fail[models.SuspicionResponse](op, "failed to evaluate customer", err, fields)
	}

	result := models.SuspicionResponse{
		CustomerID:   customerID,
		MonthlyTotal: total,
		Status:       string(customer.Status),
	}
	fields["monthlyTotal"] = total.String()

	if customer.Status != domain.CustomerStatusRegular || !total.GreaterThan(s.limits.MonthlyTransactionSuspectLimit) {
		return succeed(op, "customer status unchanged", result, fields)
	}

	if err := s.customerRepo.UpdateStatus(ctx, customerID, domain.CustomerStatusSuspected); err != nil {
		return fail[models.SuspicionResponse](op, "failed to evaluate customer", translate(err, commons.ErrCustomerNotFound), fields)
	}
	result.Status = string(domain.CustomerStatusSuspected)
	result.Flagged = true

	logger.Warn("customer flagged as suspected", fields)
	if err := s.publisher.Publish(ctx, events.LedgerEvent{
		EventType:  events.EventCustomerSuspected,
		CustomerID: customerID,
		Amount:     total.String(),
		Status:     result.Status,
	}); err != nil {
		logger.Error("suspicion service publish event failed", err, fields)
	}

	return succeed(op, "customer flagged as suspected", result, fields)
}
