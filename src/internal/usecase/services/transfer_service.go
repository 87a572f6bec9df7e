package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/events"
	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/adapter/metrics"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/google/uuid"
)

type TransferService struct {
	cardRepo        repo_interfaces.CardRepository
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	customerRepo    repo_interfaces.CustomerRepository
	txManager       repo_interfaces.TxManager
	limits          domain.LimitPolicy
	publisher       events.Publisher
	newID           func() string
	now             func() time.Time
}

func NewTransferService(
	cardRepo repo_interfaces.CardRepository,
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	customerRepo repo_interfaces.CustomerRepository,
	txManager repo_interfaces.TxManager,
	limits domain.LimitPolicy,
	publisher events.Publisher,
) *TransferService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &TransferService{
		cardRepo:        cardRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		customerRepo:    customerRepo,
		txManager:       txManager,
		limits:          limits,
		publisher:       publisher,
		newID:           uuid.NewString,
		now:             time.Now,
	}
}

func (s *TransferService) WithClock(now func() time.Time) *TransferService {
	s.now = now
	return s
}

// Transfer moves money between two cards. Only the debit card's owner may
// initiate it; the credit card may belong to anyone.
func (s *TransferService) Transfer(ctx context.Context, req models.TransferRequest, callerID int64) (commons.Response[models.TransactionResponse], error) {
	const op = "transfer service transfer"
	logger.Info(op+" request", logger.Fields{
		"payload":    logger.SanitizePayload(req),
		"customerId": callerID,
	})

	debitNumber := strings.TrimSpace(req.DebitCardNumber)
	creditNumber := strings.TrimSpace(req.CreditCardNumber)
	fields := logger.Fields{
		"debitCardNumber":  debitNumber,
		"creditCardNumber": creditNumber,
		"amount":           req.Amount.String(),
		"customerId":       callerID,
	}

	if err := req.Validate(); err != nil {
		return fail[models.TransactionResponse](op, "validation failed", err, fields)
	}
	amount := req.Amount

	var created domain.Transaction
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		debitCard, err := s.cardRepo.GetByCardNumber(ctx, debitNumber)
		if err != nil {
			return fmt.Errorf("debit %w", translate(err, commons.ErrCardNotFound))
		}
		creditCard, err := s.cardRepo.GetByCardNumber(ctx, creditNumber)
		if err != nil {
			return fmt.Errorf("credit %w", translate(err, commons.ErrCardNotFound))
		}

		accounts, err := lockAccounts(ctx, s.accountRepo, debitCard.AccountNumber, creditCard.AccountNumber)
		if err != nil {
			return err
		}
		debitAccount := accounts[debitCard.AccountNumber]
		creditAccount := accounts[creditCard.AccountNumber]

		if !debitAccount.OwnedBy(callerID) {
			return commons.Unauthorizedf("card %s does not belong to customer %d", debitNumber, callerID)
		}
		if !debitCard.IsActive() {
			return commons.InvalidStatef("debit card %s is %s", debitNumber, debitCard.Status)
		}
		if !creditCard.IsActive() {
			return commons.InvalidStatef("credit card %s is %s", creditNumber, creditCard.Status)
		}
		if debitAccount.AccountNumber == creditAccount.AccountNumber {
			return commons.Validationf("cards %s and %s draw on the same account", debitNumber, creditNumber)
		}

		if debitAccount.Balance.LessThan(amount) {
			return fmt.Errorf("%w: account %s holds %s, requested %s",
				commons.ErrInsufficientFunds, debitAccount.AccountNumber, debitAccount.Balance, amount)
		}
		remaining := debitAccount.Balance.Sub(amount)
		if remaining.LessThan(s.limits.MinAcceptableAccountBalance) {
			return commons.LimitExceededf("balance of account %s would fall to %s, below the minimum %s",
				debitAccount.AccountNumber, remaining, s.limits.MinAcceptableAccountBalance)
		}

		if _, err := s.customerRepo.GetByIDForUpdate(ctx, callerID); err != nil {
			return translate(err, commons.ErrCustomerNotFound)
		}

		now := s.now()
		dayStart := startOfDay(now)
		spent, err := s.transactionRepo.SumCompletedDebits(ctx, callerID, domain.TransactionTypeTransfer, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		if spent.Add(amount).GreaterThan(s.limits.DailyTransactionLimit) {
			return commons.LimitExceededf("daily limit %s exceeded: %s already transferred today",
				s.limits.DailyTransactionLimit, spent)
		}

		if err := s.accountRepo.UpdateBalance(ctx, debitAccount.AccountNumber, remaining); err != nil {
			return err
		}
		if err := s.accountRepo.UpdateBalance(ctx, creditAccount.AccountNumber, creditAccount.Balance.Add(amount)); err != nil {
			return err
		}

		created, err = s.transactionRepo.Create(ctx, domain.Transaction{
			ID:                  s.newID(),
			DebitAccountNumber:  debitAccount.AccountNumber,
			CreditAccountNumber: creditAccount.AccountNumber,
			DebitCardNumber:     &debitNumber,
			CreditCardNumber:    &creditNumber,
			Amount:              amount,
			TransactionDate:     now,
			Status:              domain.TransactionStatusCompleted,
			Type:                domain.TransactionTypeTransfer,
		})
		return err
	})
	if err != nil {
		return fail[models.TransactionResponse](op, "failed to transfer funds", err, fields)
	}

	s.recordCompleted(ctx, created, callerID)
	fields["transactionId"] = created.ID
	return succeed(op, "transfer completed successfully", models.NewTransactionResponse(created), fields)
}

// Deposit credits the account behind a card. It is an administrative path
// without ownership, minimum balance or daily checks.
func (s *TransferService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	const op = "transfer service deposit"
	cardNumber := strings.TrimSpace(req.CardNumber)
	fields := logger.Fields{
		"cardNumber": cardNumber,
		"amount":     req.Amount.String(),
	}
	logger.Info(op+" request", fields)

	if err := req.Validate(); err != nil {
		return fail[models.TransactionResponse](op, "validation failed", err, fields)
	}

	var (
		created    domain.Transaction
		customerID int64
	)
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		card, err := s.cardRepo.GetByCardNumber(ctx, cardNumber)
		if err != nil {
			return translate(err, commons.ErrCardNotFound)
		}
		if !card.IsActive() {
			return commons.InvalidStatef("card %s is %s", cardNumber, card.Status)
		}

		accounts, err := lockAccounts(ctx, s.accountRepo, card.AccountNumber)
		if err != nil {
			return err
		}
		account := accounts[card.AccountNumber]
		if !account.IsActive() {
			return commons.InvalidStatef("account %s is %s", account.AccountNumber, account.Status)
		}
		customerID = account.CustomerID

		if err := s.accountRepo.UpdateBalance(ctx, account.AccountNumber, account.Balance.Add(req.Amount)); err != nil {
			return err
		}

		created, err = s.transactionRepo.Create(ctx, domain.Transaction{
			ID:                  s.newID(),
			DebitAccountNumber:  account.AccountNumber,
			CreditAccountNumber: account.AccountNumber,
			DebitCardNumber:     &cardNumber,
			CreditCardNumber:    &cardNumber,
			Amount:              req.Amount,
			TransactionDate:     s.now(),
			Status:              domain.TransactionStatusCompleted,
			Type:                domain.TransactionTypeDeposit,
		})
		return err
	})
	if err != nil {
		return fail[models.TransactionResponse](op, "failed to deposit funds", err, fields)
	}

	s.recordCompleted(ctx, created, customerID)
	fields["transactionId"] = created.ID
	return succeed(op, "funds deposited successfully", models.NewTransactionResponse(created), fields)
}

func (s *TransferService) GetTransaction(ctx context.Context, id string) (commons.Response[models.TransactionResponse], error) {
	const op = "transfer service get transaction"
	id = strings.TrimSpace(id)
	fields := logger.Fields{"transactionId": id}

	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return fail[models.TransactionResponse](op, "failed to get transaction", translate(err, commons.ErrTransactionNotFound), fields)
	}
	return succeed(op, "transaction fetched successfully", models.NewTransactionResponse(tx), fields)
}

func (s *TransferService) ListCustomerTransactions(ctx context.Context, customerID int64, page commons.PageRequest) (commons.Response[commons.Page[models.TransactionResponse]], error) {
	const op = "transfer service list customer transactions"
	page = page.Normalize()
	fields := logger.Fields{"customerId": customerID, "page": page.Page, "size": page.Size}

	items, total, err := s.transactionRepo.ListByCustomerID(ctx, customerID, page)
	if err != nil {
		return fail[commons.Page[models.TransactionResponse]](op, "failed to list transactions", err, fields)
	}
	return succeed(op, "transactions fetched successfully", commons.MapPage(commons.NewPage(items, page, total), models.NewTransactionResponse), fields)
}

func (s *TransferService) ListAllTransactions(ctx context.Context, page commons.PageRequest) (commons.Response[commons.Page[models.TransactionResponse]], error) {
	const op = "transfer service list all transactions"
	page = page.Normalize()
	fields := logger.Fields{"page": page.Page, "size": page.Size}

	items, total, err := s.transactionRepo.ListAll(ctx, page)
	if err != nil {
		return fail[commons.Page[models.TransactionResponse]](op, "failed to list transactions", err, fields)
	}
	return succeed(op, "transactions fetched successfully", commons.MapPage(commons.NewPage(items, page, total), models.NewTransactionResponse), fields)
}

func (s *TransferService) recordCompleted(ctx context.Context, tx domain.Transaction, customerID int64) {
	amount, _ := tx.Amount.Float64()
	metrics.AddMovedAmount(string(tx.Type), amount)

	if err := s.publisher.Publish(ctx, completedEvent(tx, customerID)); err != nil {
		logger.Error("transfer service publish event failed", err, logger.Fields{
			"transactionId": tx.ID,
		})
	}
}

func completedEvent(tx domain.Transaction, customerID int64) events.LedgerEvent {
	return events.LedgerEvent{
		EventType:           events.EventTransactionCompleted,
		TransactionID:       tx.ID,
		TransactionType:     string(tx.Type),
		Status:              string(tx.Status),
		Amount:              tx.Amount.String(),
		DebitAccountNumber:  tx.DebitAccountNumber,
		CreditAccountNumber: tx.CreditAccountNumber,
		CustomerID:          customerID,
	}
}
