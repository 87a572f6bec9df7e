package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
)

type CardRepository struct {
	store *Store
}

func NewCardRepository(store *Store) *CardRepository {
	return &CardRepository{store: store}
}

func (r *CardRepository) Create(ctx context.Context, card domain.Card) (domain.Card, error) {
	defer r.store.lock(ctx)()

	if _, ok := r.store.cards[card.CardNumber]; ok {
		return domain.Card{}, fmt.Errorf("create card: %w", commons.ErrDuplicateResource)
	}
	if _, ok := r.store.accounts[card.AccountNumber]; !ok {
		return domain.Card{}, fmt.Errorf("create card: account %s: %w", card.AccountNumber, commons.ErrRecordNotFound)
	}
	r.store.cards[card.CardNumber] = card
	return card, nil
}

func (r *CardRepository) GetByCardNumber(ctx context.Context, cardNumber string) (domain.Card, error) {
	defer r.store.lock(ctx)()

	card, ok := r.store.cards[cardNumber]
	if !ok {
		return domain.Card{}, commons.ErrRecordNotFound
	}
	return card, nil
}

func (r *CardRepository) GetByCardNumberForUpdate(ctx context.Context, cardNumber string) (domain.Card, error) {
	return r.GetByCardNumber(ctx, cardNumber)
}

func (r *CardRepository) ExistsByCardNumber(ctx context.Context, cardNumber string) (bool, error) {
	defer r.store.lock(ctx)()

	_, ok := r.store.cards[cardNumber]
	return ok, nil
}

func (r *CardRepository) CountByAccountNumber(ctx context.Context, accountNumber string) (int, error) {
	return len(r.filter(ctx, func(c domain.Card) bool { return c.AccountNumber == accountNumber })), nil
}

func (r *CardRepository) ListByAccountNumber(ctx context.Context, accountNumber string) ([]domain.Card, error) {
	return r.filter(ctx, func(c domain.Card) bool { return c.AccountNumber == accountNumber }), nil
}

func (r *CardRepository) ListByAccountNumberPaged(ctx context.Context, accountNumber string, page commons.PageRequest) ([]domain.Card, int64, error) {
	items, total := paginate(r.filter(ctx, func(c domain.Card) bool { return c.AccountNumber == accountNumber }), page)
	return items, total, nil
}

func (r *CardRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Card, error) {
	return r.filter(ctx, r.ownedBy(customerID)), nil
}

func (r *CardRepository) ListByCustomerIDPaged(ctx context.Context, customerID int64, page commons.PageRequest) ([]domain.Card, int64, error) {
	items, total := paginate(r.filter(ctx, r.ownedBy(customerID)), page)
	return items, total, nil
}

func (r *CardRepository) ListByStatus(ctx context.Context, status domain.CardStatus, page commons.PageRequest) ([]domain.Card, int64, error) {
	items, total := paginate(r.filter(ctx, func(c domain.Card) bool { return c.Status == status }), page)
	return items, total, nil
}

func (r *CardRepository) ListAll(ctx context.Context, page commons.PageRequest) ([]domain.Card, int64, error) {
	items, total := paginate(r.filter(ctx, func(domain.Card) bool { return true }), page)
	return items, total, nil
}

func (r *CardRepository) UpdateStatus(ctx context.Context, cardNumber string, status domain.CardStatus, expiryDate time.Time) error {
	defer r.store.lock(ctx)()

	card, ok := r.store.cards[cardNumber]
	if !ok {
		return commons.ErrRecordNotFound
	}
	card.Status = status
	card.ExpiryDate = expiryDate
	r.store.cards[cardNumber] = card
	return nil
}

func (r *CardRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	defer r.store.lock(ctx)()

	var flipped int64
	for number, card := range r.store.cards {
		if card.Status == domain.CardStatusActive && card.ExpiryDate.Before(cutoff) {
			card.Status = domain.CardStatusExpired
			r.store.cards[number] = card
			flipped++
		}
	}
	return flipped, nil
}

// ownedBy reads the accounts map, so it must only run under the store lock.
func (r *CardRepository) ownedBy(customerID int64) func(domain.Card) bool {
	return func(c domain.Card) bool {
		return r.store.accounts[c.AccountNumber].CustomerID == customerID
	}
}

func (r *CardRepository) filter(ctx context.Context, keep func(domain.Card) bool) []domain.Card {
	defer r.store.lock(ctx)()

	out := make([]domain.Card, 0)
	for _, card := range r.store.cards {
		if keep(card) {
			out = append(out, card)
		}
	}
	sortByTimeDesc(out,
		func(c domain.Card) time.Time { return c.IssueDate },
		func(c domain.Card) string { return c.CardNumber },
	)
	return out
}
