package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderSink applies the storefront-side effects of an approved charge to
// the orders table. Every operation is an upsert keyed on the order ID so
// that a replayed approval observes the already-applied state instead of
// applying it twice.
type OrderSink struct {
	pool *pgxpool.Pool
}

// NewOrderSink creates a new OrderSink.
func NewOrderSink(pool *pgxpool.Pool) *OrderSink {
	return &OrderSink{pool: pool}
}

// MarkPaid records the order as paid with the processor reference. A second
// call for an already-paid order is a no-op.
func (s *OrderSink) MarkPaid(ctx context.Context, orderID int64, uniqueRef string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO orders (id, status, unique_ref, updated_at)
		 VALUES ($1, 'paid', $2, NOW())
		 ON CONFLICT (id) DO UPDATE
		 SET status = 'paid', unique_ref = EXCLUDED.unique_ref, updated_at = NOW()
		 WHERE orders.status <> 'paid'`,
		orderID, uniqueRef,
	)
	if err != nil {
		return fmt.Errorf("mark order %d paid: %w", orderID, err)
	}
	return nil
}

// DecrementStock flags the order's stock as adjusted. The flag keeps the
// adjustment from running twice for the same order.
func (s *OrderSink) DecrementStock(ctx context.Context, orderID int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO orders (id, status, stock_adjusted, updated_at)
		 VALUES ($1, 'pending', TRUE, NOW())
		 ON CONFLICT (id) DO UPDATE
		 SET stock_adjusted = TRUE, updated_at = NOW()
		 WHERE NOT orders.stock_adjusted`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("decrement stock for order %d: %w", orderID, err)
	}
	return nil
}

// ClearCart flags the shopper's cart as emptied for this order.
func (s *OrderSink) ClearCart(ctx context.Context, orderID int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO orders (id, status, cart_cleared, updated_at)
		 VALUES ($1, 'pending', TRUE, NOW())
		 ON CONFLICT (id) DO UPDATE
		 SET cart_cleared = TRUE, updated_at = NOW()
		 WHERE NOT orders.cart_cleared`,
		orderID,
	)
	if err != nil {
		return fmt.Errorf("clear cart for order %d: %w", orderID, err)
	}
	return nil
}
