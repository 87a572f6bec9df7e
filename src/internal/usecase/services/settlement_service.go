package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/adapter/events"
	"github.com/api-sage/bank-ledger/src/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/src/internal/adapter/metrics"
	"github.com/api-sage/bank-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
)

var errAlreadySettled = errors.New("transaction is no longer pending")

type SuspicionEvaluator interface {
	Evaluate(ctx context.Context, customerID int64) (commons.Response[models.SuspicionResponse], error)
}

type SettlementService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	txManager       repo_interfaces.TxManager
	suspicion       SuspicionEvaluator
	publisher       events.Publisher
	now             func() time.Time
}

func NewSettlementService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	txManager repo_interfaces.TxManager,
	suspicion SuspicionEvaluator,
	publisher events.Publisher,
) *SettlementService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &SettlementService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		suspicion:       suspicion,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (s *SettlementService) WithClock(now func() time.Time) *SettlementService {
	s.now = now
	return s
}

// RunOnce settles every PENDING transaction. Each one is applied in its own
// unit of work; one that cannot be applied is marked FAILED and the run goes on.
// A started run always drains the batch, even if ctx is cancelled meanwhile.
func (s *SettlementService) RunOnce(ctx context.Context) (commons.Response[models.SettlementSummaryResponse], error) {
	const op = "settlement service run"
	ctx = context.WithoutCancel(ctx)
	started := time.Now()
	defer metrics.ObserveJob("settlement", started)
	logger.Info(op+" request", nil)

	pending, err := s.transactionRepo.ListByStatus(ctx, domain.TransactionStatusPending)
	if err != nil {
		return fail[models.SettlementSummaryResponse](op, "failed to load pending transactions", err, nil)
	}

	var summary models.SettlementSummaryResponse
	for _, tx := range pending {
		summary.Processed++

		fields := logger.Fields{
			"transactionId":       tx.ID,
			"debitAccountNumber":  tx.DebitAccountNumber,
			"creditAccountNumber": tx.CreditAccountNumber,
			"amount":              tx.Amount.String(),
		}

		settled, customerID, err := s.settle(ctx, tx)
		if errors.Is(err, errAlreadySettled) {
			summary.Skipped++
			continue
		}
		if err != nil {
			summary.Failed++
			s.markFailed(ctx, tx, err, fields)
			continue
		}

		summary.Completed++
		metrics.ObserveSettlement(string(domain.TransactionStatusCompleted))
		logger.Info("settlement service transaction completed", fields)
		if err := s.publisher.Publish(ctx, completedEvent(settled, customerID)); err != nil {
			logger.Error("settlement service publish event failed", err, fields)
		}

		if _, err := s.suspicion.Evaluate(ctx, customerID); err != nil {
			logger.Error("settlement service suspicion check failed", err, fields)
		}
	}

	return succeed(op, "settlement run completed", summary, logger.Fields{
		"processed": summary.Processed,
		"completed": summary.Completed,
		"failed":    summary.Failed,
		"skipped":   summary.Skipped,
	})
}

func (s *SettlementService) settle(ctx context.Context, tx domain.Transaction) (domain.Transaction, int64, error) {
	var customerID int64
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.transactionRepo.GetByIDForUpdate(ctx, tx.ID)
		if err != nil {
			return translate(err, commons.ErrTransactionNotFound)
		}
		if current.Status != domain.TransactionStatusPending {
			return errAlreadySettled
		}
		tx = current

		accounts, err := lockAccounts(ctx, s.accountRepo, tx.DebitAccountNumber, tx.CreditAccountNumber)
		if err != nil {
			return err
		}
		debit := accounts[tx.DebitAccountNumber]
		credit := accounts[tx.CreditAccountNumber]

		if !debit.IsActive() {
			return commons.InvalidStatef("debit account %s is %s", debit.AccountNumber, debit.Status)
		}
		if debit.Balance.LessThan(tx.Amount) {
			return fmt.Errorf("%w: account %s holds %s, requested %s",
				commons.ErrInsufficientFunds, debit.AccountNumber, debit.Balance, tx.Amount)
		}
		if !credit.IsActive() {
			return commons.InvalidStatef("credit account %s is %s", credit.AccountNumber, credit.Status)
		}

		// Same-account records net to zero.
		if debit.AccountNumber != credit.AccountNumber {
			if err := s.accountRepo.UpdateBalance(ctx, debit.AccountNumber, debit.Balance.Sub(tx.Amount)); err != nil {
				return err
			}
			if err := s.accountRepo.UpdateBalance(ctx, credit.AccountNumber, credit.Balance.Add(tx.Amount)); err != nil {
				return err
			}
		}

		tx.Status = domain.TransactionStatusCompleted
		tx.TransactionDate = s.now()
		customerID = debit.CustomerID
		return s.transactionRepo.UpdateStatus(ctx, tx.ID, tx.Status, tx.TransactionDate)
	})
	return tx, customerID, err
}

// markFailed runs outside the failed unit of work so the FAILED status survives its rollback.
func (s *SettlementService) markFailed(ctx context.Context, tx domain.Transaction, cause error, fields logger.Fields) {
	logger.Error("settlement service transaction failed", cause, fields)
	metrics.ObserveSettlement(string(domain.TransactionStatusFailed))

	if err := s.transactionRepo.UpdateStatus(ctx, tx.ID, domain.TransactionStatusFailed, tx.TransactionDate); err != nil {
		logger.Error("settlement service mark failed status failed", err, fields)
		return
	}

	if err := s.publisher.Publish(ctx, events.LedgerEvent{
		EventType:           events.EventTransactionFailed,
		TransactionID:       tx.ID,
		TransactionType:     string(tx.Type),
		Status:              string(domain.TransactionStatusFailed),
		Amount:              tx.Amount.String(),
		DebitAccountNumber:  tx.DebitAccountNumber,
		CreditAccountNumber: tx.CreditAccountNumber,
		ErrorMessage:        cause.Error(),
	}); err != nil {
		logger.Error("settlement service publish event failed", err, fields)
	}
}
