package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/redis/go-redis/v9"
)

const LedgerEventsChannel = "ledger_events"

const (
	EventTransactionCompleted = "transaction.completed"
	EventTransactionFailed    = "transaction.failed"
	EventCustomerSuspected    = "customer.suspected"
)

type LedgerEvent struct {
	EventType           string    `json:"event_type"`
	TransactionID       string    `json:"transaction_id,omitempty"`
	TransactionType     string    `json:"transaction_type,omitempty"`
	Status              string    `json:"status,omitempty"`
	Amount              string    `json:"amount,omitempty"`
	DebitAccountNumber  string    `json:"debit_account_number,omitempty"`
	CreditAccountNumber string    `json:"credit_account_number,omitempty"`
	CustomerID          int64     `json:"customer_id,omitempty"`
	ErrorMessage        string    `json:"error_message,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

// Publisher delivers ledger events after the state change they describe has committed.
type Publisher interface {
	Publish(ctx context.Context, event LedgerEvent) error
}

type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: LedgerEventsChannel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event LedgerEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ledger event: %w", err)
	}

	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish ledger event: %w", err)
	}

	logger.Info("ledger event published", logger.Fields{
		"eventType":     event.EventType,
		"transactionId": event.TransactionID,
		"customerId":    event.CustomerID,
	})
	return nil
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, LedgerEvent) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []LedgerEvent
}

func (r *Recorder) Publish(_ context.Context, event LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) OfType(eventType string) []LedgerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []LedgerEvent
	for _, event := range r.events {
		if event.EventType == eventType {
			out = append(out, event)
		}
	}
	return out
}
