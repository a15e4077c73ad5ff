package transaction

import "context"

// Repository persists transaction records.
//
// Create must refuse a second record with an already-stored unique
// reference by returning errors.ErrDuplicateTransaction; the uniqueness
// constraint lives in the storage layer so it also holds across process
// instances.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByOrderID(ctx context.Context, orderID int64) ([]*Transaction, error)
	GetByUniqueRef(ctx context.Context, uniqueRef string) (*Transaction, error)
}
