package transaction

import (
	"time"

	"github.com/vzabara/nuvei-gateway/internal/domain/errors"
)

// UniqueRefLength is the fixed length of a processor-issued unique reference.
const UniqueRefLength = 10

// Transaction is the durable record of one approved authorization.
// It is written exactly once and never mutated; the unique reference is
// the idempotency key guarding against double-crediting an order.
type Transaction struct {
	ID        int64
	OrderID   int64
	UniqueRef string
	Payload   string // raw gateway response body, as received
	SettledAt time.Time
	CreatedAt time.Time
}

// New builds a transaction record for an approved authorization.
func New(orderID int64, uniqueRef, payload string, settledAt time.Time) (*Transaction, error) {
	if orderID <= 0 {
		return nil, errors.NewValidationError("order_id", "must be present and positive")
	}
	if len(uniqueRef) != UniqueRefLength {
		return nil, errors.NewValidationError("unique_ref", "must be exactly 10 characters")
	}
	return &Transaction{
		OrderID:   orderID,
		UniqueRef: uniqueRef,
		Payload:   payload,
		SettledAt: settledAt,
		CreatedAt: time.Now(),
	}, nil
}
