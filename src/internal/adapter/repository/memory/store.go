package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/commons"
	"github.com/api-sage/bank-ledger/src/internal/domain"
)

type unitKey struct{}

// Store keeps every table in process memory. A unit of work holds the store
// mutex for its whole duration and restores a snapshot when it fails.
type Store struct {
	mu             sync.Mutex
	accounts       map[string]domain.Account
	cards          map[string]domain.Card
	transactions   map[string]domain.Transaction
	customers      map[int64]domain.Customer
	nextCustomerID int64
}

func NewStore() *Store {
	return &Store{
		accounts:     map[string]domain.Account{},
		cards:        map[string]domain.Card{},
		transactions: map[string]domain.Transaction{},
		customers:    map[int64]domain.Customer{},
	}
}

type snapshot struct {
	accounts       map[string]domain.Account
	cards          map[string]domain.Card
	transactions   map[string]domain.Transaction
	customers      map[int64]domain.Customer
	nextCustomerID int64
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inUnit(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, unitKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) inUnit(ctx context.Context) bool {
	owner, _ := ctx.Value(unitKey{}).(*Store)
	return owner == s
}

func (s *Store) lock(ctx context.Context) func() {
	if s.inUnit(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		accounts:       cloneMap(s.accounts),
		cards:          cloneMap(s.cards),
		transactions:   cloneMap(s.transactions),
		customers:      cloneMap(s.customers),
		nextCustomerID: s.nextCustomerID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.cards = snap.cards
	s.transactions = snap.transactions
	s.customers = snap.customers
	s.nextCustomerID = snap.nextCustomerID
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func paginate[T any](items []T, page commons.PageRequest) ([]T, int64) {
	total := int64(len(items))
	start := page.Offset()
	if start >= len(items) {
		return []T{}, total
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

func sortByTimeDesc[T any](items []T, at func(T) time.Time, key func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		ti, tj := at(items[i]), at(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return key(items[i]) < key(items[j])
	})
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
