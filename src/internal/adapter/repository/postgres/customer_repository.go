package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
	"github.com/api-sage/bank-ledger/src/internal/logger"
)

const customerColumns = `id, first_name, last_name, birth_date, fin_code, phone_number, registration_date, status`

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository create", nil)

	const query = `
INSERT INTO customers (first_name, last_name, birth_date, fin_code, phone_number, registration_date, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	if err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		customer.FirstName,
		customer.LastName,
		customer.BirthDate,
		customer.FinCode,
		customer.PhoneNumber,
		customer.RegistrationDate,
		customer.Status,
	).Scan(&customer.ID); err != nil {
		logger.Error("customer repository create failed", err, nil)
		return domain.Customer{}, mapWriteError("create customer", err)
	}

	logger.Info("customer repository create success", logger.Fields{
		"customerId": customer.ID,
	})
	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, id int64) (domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *CustomerRepository) getOne(ctx context.Context, query string, id int64) (domain.Customer, error) {
	var customer domain.Customer
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.BirthDate,
		&customer.FinCode,
		&customer.PhoneNumber,
		&customer.RegistrationDate,
		&customer.Status,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("customer repository record not found", logger.Fields{
				"customerId": id,
			})
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		logger.Error("customer repository get failed", err, logger.Fields{
			"customerId": id,
		})
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

func (r *CustomerRepository) ExistsByFinCode(ctx context.Context, finCode string) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE fin_code = $1)`
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, finCode).Scan(&exists); err != nil {
		return false, fmt.Errorf("check customer fin code: %w", err)
	}
	return exists, nil
}

func (r *CustomerRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE phone_number = $1)`
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, phoneNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check customer phone number: %w", err)
	}
	return exists, nil
}

func (r *CustomerRepository) UpdateStatus(ctx context.Context, id int64, status domain.CustomerStatus) error {
	logger.Info("customer repository update status", logger.Fields{
		"customerId": id,
		"status":     status,
	})

	result, err := conn(ctx, r.db).ExecContext(ctx, `UPDATE customers SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		logger.Error("customer repository update status failed", err, logger.Fields{
			"customerId": id,
		})
		return fmt.Errorf("update customer status: %w", err)
	}
	return requireRows(result, "update customer status")
}
