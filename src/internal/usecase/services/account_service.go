package services

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/shopspring/decimal"
)

type AccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	customerRepo repo_interfaces.CustomerRepository
	txManager    repo_interfaces.TxManager
	limits       domain.LimitPolicy
	numbers      IdentifierGenerator
	now          func() time.Time
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
	txManager repo_interfaces.TxManager,
	limits domain.LimitPolicy,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		limits:       limits,
		numbers:      NewAccountNumberGenerator(nil),
		now:          time.Now,
	}
}

func (s *AccountService) WithClock(now func() time.Time) *AccountService {
	s.now = now
	return s
}

func (s *AccountService) WithNumberGenerator(gen IdentifierGenerator) *AccountService {
	s.numbers = gen
	return s
}

func (s *AccountService) CreateAccount(ctx context.Context, customerID int64) (commons.Response[models.AccountResponse], error) {
	const op = "account service create account"
	logger.Info(op+" request", logger.Fields{
		"customerId": customerID,
	})

	var created domain.Account
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByIDForUpdate(ctx, customerID)
		if err != nil {
			return translate(err, commons.ErrCustomerNotFound)
		}
		if !customer.CanOpenProducts() {
			return commons.InvalidStatef("customer %d is %s", customerID, customer.Status)
		}

		count, err := s.accountRepo.CountByCustomerIDAndStatus(ctx, customerID, domain.AccountStatusActive)
		if err != nil {
			return err
		}
		if count >= s.limits.MaxAccountsPerCustomer {
			return commons.LimitExceededf("customer %d already holds %d active accounts", customerID, count)
		}

		number, err := allocateUnique(ctx, s.numbers, s.accountRepo.ExistsByAccountNumber)
		if err != nil {
			return err
		}

		now := s.now()
		created, err = s.accountRepo.Create(ctx, domain.Account{
			AccountNumber: number,
			CustomerID:    customerID,
			Balance:       decimal.Zero,
			OpeningDate:   now,
			ExpiryDate:    now.AddDate(domain.AccountValidity, 0, 0),
			Status:        domain.AccountStatusActive,
		})
		return err
	})
	if err != nil {
		return fail[models.AccountResponse](op, "failed to create account", err, logger.Fields{
			"customerId": customerID,
		})
	}

	return succeed(op, "account created successfully", models.NewAccountResponse(created), logger.Fields{
		"accountNumber": created.AccountNumber,
		"customerId":    created.CustomerID,
	})
}

func (s *AccountService) ActivateAccount(ctx context.Context, accountNumber string, callerID int64) (commons.Response[models.AccountResponse], error) {
	const op = "account service activate account"
	accountNumber = strings.TrimSpace(accountNumber)
	fields := logger.Fields{
		"accountNumber": accountNumber,
		"customerId":    callerID,
	}
	logger.Info(op+" request", fields)

	var account domain.Account
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.GetByAccountNumberForUpdate(ctx, accountNumber)
		if err != nil {
			return translate(err, commons.ErrAccountNotFound)
		}
		if !account.OwnedBy(callerID) {
			return commons.Unauthorizedf("account %s does not belong to customer %d", accountNumber, callerID)
		}

		switch account.Status {
		case domain.AccountStatusDeleted:
			return commons.InvalidStatef("account %s is deleted", accountNumber)
		case domain.AccountStatusActive:
			return commons.InvalidStatef("account %s is already active", accountNumber)
		}

		account.Status = domain.AccountStatusActive
		account.ExpiryDate = s.now().AddDate(domain.AccountReactivationPeriod, 0, 0)
		return s.accountRepo.UpdateStatus(ctx, accountNumber, account.Status, account.ExpiryDate)
	})
	if err != nil {
		return fail[models.AccountResponse](op, "failed to activate account", err, fields)
	}

	return succeed(op, "account activated successfully", models.NewAccountResponse(account), fields)
}

// GetAccount returns one account. A non-nil callerID restricts it to the owner.
func (s *AccountService) GetAccount(ctx context.Context, accountNumber string, callerID *int64) (commons.Response[models.AccountResponse], error) {
	const op = "account service get account"
	accountNumber = strings.TrimSpace(accountNumber)
	fields := logger.Fields{"accountNumber": accountNumber}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		return fail[models.AccountResponse](op, "failed to get account", translate(err, commons.ErrAccountNotFound), fields)
	}
	if callerID != nil && !account.OwnedBy(*callerID) {
		err := commons.Unauthorizedf("account %s does not belong to customer %d", accountNumber, *callerID)
		return fail[models.AccountResponse](op, "failed to get account", err, fields)
	}

	return succeed(op, "account fetched successfully", models.NewAccountResponse(account), fields)
}

func (s *AccountService) ListCustomerAccounts(ctx context.Context, customerID int64) (commons.Response[[]models.AccountResponse], error) {
	const op = "account service list customer accounts"
	fields := logger.Fields{"customerId": customerID}

	accounts, err := s.accountRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return fail[[]models.AccountResponse](op, "failed to list accounts", err, fields)
	}

	out := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, models.NewAccountResponse(account))
	}
	fields["count"] = len(out)
	return succeed(op, "accounts fetched successfully", out, fields)
}

func (s *AccountService) ListAccountsByStatus(ctx context.Context, status string, page commons.PageRequest) (commons.Response[commons.Page[models.AccountResponse]], error) {
	const op = "account service list accounts by status"
	page = page.Normalize()
	fields := logger.Fields{"status": status, "page": page.Page, "size": page.Size}

	parsed, err := parseAccountStatus(strings.ToUpper(strings.TrimSpace(status)))
	if err != nil {
		return fail[commons.Page[models.AccountResponse]](op, "validation failed", err, fields)
	}

	accounts, total, err := s.accountRepo.ListByStatus(ctx, parsed, page)
	if err != nil {
		return fail[commons.Page[models.AccountResponse]](op, "failed to list accounts", err, fields)
	}

	result := commons.MapPage(commons.NewPage(accounts, page, total), models.NewAccountResponse)
	return succeed(op, "accounts fetched successfully", result, fields)
}

func (s *AccountService) ListAllAccounts(ctx context.Context, page commons.PageRequest) (commons.Response[commons.Page[models.AccountResponse]], error) {
	const op = "account service list all accounts"
	page = page.Normalize()
	fields := logger.Fields{"page": page.Page, "size": page.Size}

	accounts, total, err := s.accountRepo.ListAll(ctx, page)
	if err != nil {
		return fail[commons.Page[models.AccountResponse]](op, "failed to list accounts", err, fields)
	}

	result := commons.MapPage(commons.NewPage(accounts, page, total), models.NewAccountResponse)
	return succeed(op, "accounts fetched successfully", result, fields)
}

// ExpireAccounts flips every account whose expiry date is before today.
func (s *AccountService) ExpireAccounts(ctx context.Context) (commons.Response[models.ExpirySweepResponse], error) {
	const op = "account service expire accounts"
	cutoff := startOfDay(s.now())
	fields := logger.Fields{"cutoff": cutoff.Format(time.RFC3339)}
	logger.Info(op+" request", fields)

	flipped, err := s.accountRepo.ExpireBefore(ctx, cutoff)
	if err != nil {
		return fail[models.ExpirySweepResponse](op, "failed to expire accounts", err, fields)
	}

	fields["expired"] = flipped
	return succeed(op, "accounts expired successfully", models.ExpirySweepResponse{
		ExpiredAccounts: flipped,
		Cutoff:          cutoff.Format(time.RFC3339),
	}, fields)
}
