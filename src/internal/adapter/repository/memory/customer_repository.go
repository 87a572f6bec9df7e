package memory

import (
	"context"
	"fmt"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
)

type CustomerRepository struct {
	store *Store
}

func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	defer r.store.lock(ctx)()

	for _, existing := range r.store.customers {
		if customer.FinCode != "" && existing.FinCode == customer.FinCode {
			return domain.Customer{}, fmt.Errorf("create customer: fin code: %w", commons.ErrDuplicateResource)
		}
		if customer.PhoneNumber != "" && existing.PhoneNumber == customer.PhoneNumber {
			return domain.Customer{}, fmt.Errorf("create customer: phone number: %w", commons.ErrDuplicateResource)
		}
	}

	if customer.ID == 0 {
		r.store.nextCustomerID++
		customer.ID = r.store.nextCustomerID
	} else if customer.ID > r.store.nextCustomerID {
		r.store.nextCustomerID = customer.ID
	}
	if _, ok := r.store.customers[customer.ID]; ok {
		return domain.Customer{}, fmt.Errorf("create customer %d: %w", customer.ID, commons.ErrDuplicateResource)
	}

	r.store.customers[customer.ID] = customer
	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	defer r.store.lock(ctx)()

	customer, ok := r.store.customers[id]
	if !ok {
		return domain.Customer{}, commons.ErrRecordNotFound
	}
	return customer, nil
}

func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, id int64) (domain.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *CustomerRepository) ExistsByFinCode(ctx context.Context, finCode string) (bool, error) {
	defer r.store.lock(ctx)()

	for _, customer := range r.store.customers {
		if customer.FinCode == finCode {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	defer r.store.lock(ctx)()

	for _, customer := range r.store.customers {
		if customer.PhoneNumber == phoneNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) UpdateStatus(ctx context.Context, id int64, status domain.CustomerStatus) error {
	defer r.store.lock(ctx)()

	customer, ok := r.store.customers[id]
	if !ok {
		return commons.ErrRecordNotFound
	}
	customer.Status = status
	r.store.customers[id] = customer
	return nil
}
