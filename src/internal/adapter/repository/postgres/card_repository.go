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
)

const cardColumns = `c.card_number, c.account_number, c.issue_date, c.expiry_date, c.status`

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card domain.Card) (domain.Card, error) {
	logger.Info("card repository create", logger.Fields{
		"accountNumber": card.AccountNumber,
	})

	const query = `
INSERT INTO cards (card_number, account_number, issue_date, expiry_date, status)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := conn(ctx, r.db).ExecContext(
		ctx,
		query,
		card.CardNumber,
		card.AccountNumber,
		card.IssueDate,
		card.ExpiryDate,
		card.Status,
	); err != nil {
		logger.Error("card repository create failed", err, logger.Fields{
			"accountNumber": card.AccountNumber,
		})
		return domain.Card{}, mapWriteError("create card", err)
	}

	return card, nil
}

func (r *CardRepository) GetByCardNumber(ctx context.Context, cardNumber string) (domain.Card, error) {
	const query = `SELECT ` + cardColumns + ` FROM cards c WHERE c.card_number = $1`
	return r.getOne(ctx, query, cardNumber)
}

func (r *CardRepository) GetByCardNumberForUpdate(ctx context.Context, cardNumber string) (domain.Card, error) {
	const query = `SELECT ` + cardColumns + ` FROM cards c WHERE c.card_number = $1 FOR UPDATE`
	return r.getOne(ctx, query, cardNumber)
}

func (r *CardRepository) getOne(ctx context.Context, query string, cardNumber string) (domain.Card, error) {
	card, err := scanCard(conn(ctx, r.db).QueryRowContext(ctx, query, cardNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Card{}, commons.ErrRecordNotFound
		}
		logger.Error("card repository get failed", err, nil)
		return domain.Card{}, fmt.Errorf("get card by card number: %w", err)
	}
	return card, nil
}

func (r *CardRepository) ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM cards WHERE card_number = $1)`

	var exists bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, cardNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check card number: %w", err)
	}
	return exists, nil
}

func (r *CardRepository) CountByAccountNumber(ctx context.Context, accountNumber string) (int, error) {
	total, err := countRows(ctx, conn(ctx, r.db), `SELECT COUNT(1) FROM cards WHERE account_number = $1`, accountNumber)
	if err != nil {
		return 0, fmt.Errorf("count cards by account: %w", err)
	}
	return int(total), nil
}

func (r *CardRepository) ListByAccountNumber(ctx context.Context, accountNumber string) ([]domain.Card, error) {
	const query = `
SELECT ` + cardColumns + `
FROM cards c
WHERE c.account_number = $1
ORDER BY c.issue_date DESC, c.card_number`

	return r.list(ctx, "list cards by account", query, accountNumber)
}

func (r *CardRepository) ListByAccountNumberPaged(ctx context.Context, accountNumber string, page commons.PageRequest) ([]domain.Card, int64, error) {
	const query = `
SELECT ` + cardColumns + `
FROM cards c
WHERE c.account_number = $1
ORDER BY c.issue_date DESC, c.card_number
LIMIT $2 OFFSET $3`

	total, err := countRows(ctx, conn(ctx, r.db), `SELECT COUNT(1) FROM cards WHERE account_number = $1`, accountNumber)
	if err != nil {
		return nil, 0, fmt.Errorf("count cards by account: %w", err)
	}
	items, err := r.list(ctx, "list cards by account", query, accountNumber, page.Size, page.Offset())
	return items, total, err
}

func (r *CardRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Card, error) {
	const query = `
SELECT ` + cardColumns + `
FROM cards c
JOIN accounts a ON a.account_number = c.account_number
WHERE a.customer_id = $1
ORDER BY c.issue_date DESC, c.card_number`

	return r.list(ctx, "list cards by customer", query, customerID)
}

func (r *CardRepository) ListByCustomerIDPaged(ctx context.Context, customerID int64, page commons.PageRequest) ([]domain.Card, int64, error) {
	const query = `
SELECT ` + cardColumns + `
FROM cards c
JOIN accounts a ON a.account_number = c.account_number
WHERE a.customer_id = $1
ORDER BY c.issue_date DESC, c.card_number
LIMIT $2 OFFSET $3`

	const countQuery = `
SELECT COUNT(1)
FROM cards c
JOIN accounts a ON a.account_number = c.account_number
WHERE a.customer_id = $1`

	total, err := countRows(ctx, conn(ctx, r.db), countQuery, customerID)
	if err != nil {
		return nil, 0, fmt.Errorf("count cards by customer: %w", err)
	}
	items, err := r.list(ctx, "list cards by customer", query, customerID, page.Size, page.Offset())
	return items, total, err
}

func (r *CardRepository) ListByStatus(ctx context.Context, status domain.CardStatus, page commons.PageRequest) ([]domain.Card, int64, error) {
	const query = `
SELECT ` + cardColumns + `
FROM cards c
WHERE c.status = $1
ORDER BY c.issue_date DESC, c.card_number
LIMIT $2 OFFSET $3`

	total, err := countRows(ctx, conn(ctx, r.db), `SELECT COUNT(1) FROM cards WHERE status = $1`, status)
	if err != nil {
		return nil, 0, fmt.Errorf("count cards by status: %w", err)
	}
	items, err := r.list(ctx, "list cards by status", query, status, page.Size, page.Offset())
	return items, total, err
}

func (r *CardRepository) ListAll(ctx context.Context, page commons.PageRequest) ([]domain.Card, int64, error) {
	const query = `
SELECT ` + cardColumns + `
FROM cards c
ORDER BY c.issue_date DESC, c.card_number
LIMIT $1 OFFSET $2`

	total, err := countRows(ctx, conn(ctx, r.db), `SELECT COUNT(1) FROM cards`)
	if err != nil {
		return nil, 0, fmt.Errorf("count cards: %w", err)
	}
	items, err := r.list(ctx, "list cards", query, page.Size, page.Offset())
	return items, total, err
}

func (r *CardRepository) UpdateStatus(ctx context.Context, cardNumber string, status domain.CardStatus, expiryDate time.Time) error {
	logger.Info("card repository update status", logger.Fields{
		"status": status,
	})

	const query = `
UPDATE cards
SET status = $2,
    expiry_date = $3
WHERE card_number = $1`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, cardNumber, status, expiryDate)
	if err != nil {
		logger.Error("card repository update status failed", err, nil)
		return fmt.Errorf("update card status: %w", err)
	}
	return requireRows(result, "update card status")
}

func (r *CardRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `
UPDATE cards
SET status = 'EXPIRED'
WHERE expiry_date < $1
  AND status = 'ACTIVE'`

	result, err := conn(ctx, r.db).ExecContext(ctx, query, cutoff)
	if err != nil {
		logger.Error("card repository expire failed", err, logger.Fields{
			"cutoff": cutoff,
		})
		return 0, fmt.Errorf("expire cards: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expire cards rows affected: %w", err)
	}
	return rows, nil
}

func (r *CardRepository) list(ctx context.Context, op string, query string, args ...any) ([]domain.Card, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("card repository "+op+" failed", err, nil)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	cards := make([]domain.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return cards, nil
}

func scanCard(row rowScanner) (domain.Card, error) {
	var card domain.Card
	err := row.Scan(
		&card.CardNumber,
		&card.AccountNumber,
		&card.IssueDate,
		&card.ExpiryDate,
		&card.Status,
	)
	return card, err
}
