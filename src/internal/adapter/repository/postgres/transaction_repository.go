package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/shopspring/decimal"
)

const transactionColumns = `t.id, t.debit_account_number, t.credit_account_number, t.debit_card_number,
	t.credit_card_number, t.amount, t.transaction_date, t.status, t.type`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	logger.Info("transaction repository create", logger.Fields{
		"transactionId":       transaction.ID,
		"debitAccountNumber":  transaction.DebitAccountNumber,
		"creditAccountNumber": transaction.CreditAccountNumber,
		"status":              transaction.Status,
	})

	const query = `
INSERT INTO transactions (
	id,
	debit_account_number,
	credit_account_number,
	debit_card_number,
	credit_card_number,
	amount,
	transaction_date,
	status,
	type
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := conn(ctx, r.db).ExecContext(
		ctx,
		query,
		transaction.ID,
		transaction.DebitAccountNumber,
		transaction.CreditAccountNumber,
		nullString(transaction.DebitCardNumber),
		nullString(transaction.CreditCardNumber),
		transaction.Amount,
		transaction.TransactionDate,
		transaction.Status,
		transaction.Type,
	); err != nil {
		logger.Error("transaction repository create failed", err, logger.Fields{
			"transactionId": transaction.ID,
		})
		return domain.Transaction{}, mapWriteError("create transaction", err)
	}

	return transaction, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.id = $1`
	return r.getOne(ctx, query, id)
}

func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id string) (domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *TransactionRepository) getOne(ctx context.Context, query string, id string) (domain.Transaction, error) {
	transaction, err := scanTransaction(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("transaction repository record not found", logger.Fields{
				"transactionId": id,
			})
			return domain.Transaction{}, commons.ErrRecordNotFound
		}
		logger.Error("transaction repository get failed", err, logger.Fields{
			"transactionId": id,
		})
		return domain.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return transaction, nil
}

// ListByStatus returns records oldest first so settlement applies them in arrival order.
func (r *TransactionRepository) ListByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions t
WHERE t.status = $1
ORDER BY t.transaction_date, t.id`

	return r.list(ctx, "list transactions by status", query, status)
}

func (r *TransactionRepository) ListByCustomerID(ctx context.Context, customerID int64, page commons.PageRequest) ([]domain.Transaction, int64, error) {
	const filter = `
FROM transactions t
WHERE t.debit_account_number IN (SELECT account_number FROM accounts WHERE customer_id = $1)
   OR t.credit_account_number IN (SELECT account_number FROM accounts WHERE customer_id = $1)`

	total, err := countRows(ctx, conn(ctx, r.db), `SELECT COUNT(1) `+filter, customerID)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions by customer: %w", err)
	}

	query := `SELECT ` + transactionColumns + filter + `
ORDER BY t.transaction_date DESC, t.id
LIMIT $2 OFFSET $3`
	items, err := r.list(ctx, "list transactions by customer", query, customerID, page.Size, page.Offset())
	return items, total, err
}

func (r *TransactionRepository) ListAll(ctx context.Context, page commons.PageRequest) ([]domain.Transaction, int64, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions t
ORDER BY t.transaction_date DESC, t.id
LIMIT $1 OFFSET $2`

	total, err := countRows(ctx, conn(ctx, r.db), `SELECT COUNT(1) FROM transactions`)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}
	items, err := r.list(ctx, "list transactions", query, page.Size, page.Offset())
	return items, total, err
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, transactionDate time.Time) error {
	logger.Info("transaction repository update status", logger.Fields{
		"transactionId": id,
		"status":        status,
	})

	const query = `
UPDATE transactions
SET status = $2,
    transaction_date = $3
WHERE id = $1`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, id, status, transactionDate)
	if err != nil {
		logger.Error("transaction repository update status failed", err, logger.Fields{
			"transactionId": id,
		})
		return fmt.Errorf("update transaction status: %w", err)
	}
	return requireRows(result, "update transaction status")
}

func (r *TransactionRepository) SumCompletedDebits(ctx context.Context, customerID int64, txType domain.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(t.amount), 0)
FROM transactions t
JOIN accounts a ON a.account_number = t.debit_account_number
WHERE a.customer_id = $1
  AND t.status = 'COMPLETED'
  AND t.type = $2
  AND t.transaction_date >= $3
  AND t.transaction_date < $4`

	var total decimal.Decimal
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, customerID, txType, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum completed debits: %w", err)
	}
	return total, nil
}

func (r *TransactionRepository) SumCompletedActivity(ctx context.Context, customerID int64, from, to time.Time) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(t.amount), 0)
FROM transactions t
WHERE t.status = 'COMPLETED'
  AND t.transaction_date >= $2
  AND t.transaction_date < $3
  AND (t.debit_account_number IN (SELECT account_number FROM accounts WHERE customer_id = $1)
    OR t.credit_account_number IN (SELECT account_number FROM accounts WHERE customer_id = $1))`

	var total decimal.Decimal
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, customerID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum completed activity: %w", err)
	}
	return total, nil
}

func (r *TransactionRepository) list(ctx context.Context, op string, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("transaction repository "+op+" failed", err, nil)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return transactions, nil
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		transaction domain.Transaction
		debitCard   sql.NullString
		creditCard  sql.NullString
	)
	err := row.Scan(
		&transaction.ID,
		&transaction.DebitAccountNumber,
		&transaction.CreditAccountNumber,
		&debitCard,
		&creditCard,
		&transaction.Amount,
		&transaction.TransactionDate,
		&transaction.Status,
		&transaction.Type,
	)
	if debitCard.Valid {
		transaction.DebitCardNumber = &debitCard.String
	}
	if creditCard.Valid {
		transaction.CreditCardNumber = &creditCard.String
	}
	return transaction, err
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
