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

const accountColumns = `account_number, customer_id, balance, opening_date, expiry_date, status`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountNumber": account.AccountNumber,
		"customerId":    account.CustomerID,
	})

	const query = `
INSERT INTO accounts (` + accountColumns + `)
VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := conn(ctx, r.db).ExecContext(
		ctx,
		query,
		account.AccountNumber,
		account.CustomerID,
		account.Balance,
		account.OpeningDate,
		account.ExpiryDate,
		account.Status,
	); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, mapWriteError("create account", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return r.getOne(ctx, query, accountNumber)
}

func (r *AccountRepository) GetByAccountNumberForUpdate(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1 FOR UPDATE`
	return r.getOne(ctx, query, accountNumber)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, accountNumber string) (domain.Account, error) {
	account, err := scanAccount(conn(ctx, r.db).QueryRowContext(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountNumber": accountNumber,
			})
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, fmt.Errorf("get account by account number: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`

	var exists bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, accountNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check account number: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) CountByCustomerIDAndStatus(ctx context.Context, customerID int64, status domain.AccountStatus) (int, error) {
	const query = `SELECT COUNT(1) FROM accounts WHERE customer_id = $1 AND status = $2`

	total, err := countRows(ctx, conn(ctx, r.db), query, customerID, status)
	if err != nil {
		return 0, fmt.Errorf("count accounts by customer: %w", err)
	}
	return int(total), nil
}

func (r *AccountRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE customer_id = $1
ORDER BY opening_date DESC, account_number`

	return r.list(ctx, "list accounts by customer", query, customerID)
}

func (r *AccountRepository) ListByStatus(ctx context.Context, status domain.AccountStatus, page commons.PageRequest) ([]domain.Account, int64, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE status = $1
ORDER BY opening_date DESC, account_number
LIMIT $2 OFFSET $3`

	total, err := countRows(ctx, conn(ctx, r.db), `SELECT COUNT(1) FROM accounts WHERE status = $1`, status)
	if err != nil {
		return nil, 0, fmt.Errorf("count accounts by status: %w", err)
	}
	items, err := r.list(ctx, "list accounts by status", query, status, page.Size, page.Offset())
	return items, total, err
}

func (r *AccountRepository) ListAll(ctx context.Context, page commons.PageRequest) ([]domain.Account, int64, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
ORDER BY opening_date DESC, account_number
LIMIT $1 OFFSET $2`

	total, err := countRows(ctx, conn(ctx, r.db), `SELECT COUNT(1) FROM accounts`)
	if err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}
	items, err := r.list(ctx, "list accounts", query, page.Size, page.Offset())
	return items, total, err
}

func (r *AccountRepository) UpdateStatus(ctx context.Context, accountNumber string, status domain.AccountStatus, expiryDate time.Time) error {
	logger.Info("account repository update status", logger.Fields{
		"accountNumber": accountNumber,
		"status":        status,
	})

	const query = `
UPDATE accounts
SET status = $2,
    expiry_date = $3
WHERE account_number = $1`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, accountNumber, status, expiryDate)
	if err != nil {
		logger.Error("account repository update status failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return fmt.Errorf("update account status: %w", err)
	}
	return requireRows(result, "update account status")
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, accountNumber string, balance decimal.Decimal) error {
	const query = `UPDATE accounts SET balance = $2::numeric WHERE account_number = $1`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, accountNumber, balance)
	if err != nil {
		logger.Error("account repository update balance failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return fmt.Errorf("update account balance: %w", err)
	}
	return requireRows(result, "update account balance")
}

func (r *AccountRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `
UPDATE accounts
SET status = 'EXPIRED'
WHERE expiry_date < $1
  AND status <> 'EXPIRED'`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, cutoff)
	if err != nil {
		logger.Error("account repository expire failed", err, logger.Fields{
			"cutoff": cutoff,
		})
		return 0, fmt.Errorf("expire accounts: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expire accounts rows affected: %w", err)
	}
	return rows, nil
}

func (r *AccountRepository) list(ctx context.Context, op string, query string, args ...any) ([]domain.Account, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("account repository "+op+" failed", err, nil)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.AccountNumber,
		&account.CustomerID,
		&account.Balance,
		&account.OpeningDate,
		&account.ExpiryDate,
		&account.Status,
	)
	return account, err
}
