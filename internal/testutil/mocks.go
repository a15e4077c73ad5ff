package testutil

import (
	"context"
	"sync"

	domainErrors "github.com/vzabara/nuvei-gateway/internal/domain/errors"
	"github.com/vzabara/nuvei-gateway/internal/domain/transaction"
	"github.com/vzabara/nuvei-gateway/internal/gateway/nuvei"
)

// --- Transaction Repository Mock ---

// MockTransactionRepository is an in-memory transaction.Repository that
// enforces the unique-reference constraint the way the database does.
type MockTransactionRepository struct {
	mu    sync.Mutex
	byRef map[string]*transaction.Transaction
	seq   int64

	CreateFunc func(ctx context.Context, tx *transaction.Transaction) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{byRef: make(map[string]*transaction.Transaction)}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byRef[tx.UniqueRef]; exists {
		return domainErrors.ErrDuplicateTransaction
	}
	m.seq++
	tx.ID = m.seq
	m.byRef[tx.UniqueRef] = tx
	return nil
}

func (m *MockTransactionRepository) GetByOrderID(ctx context.Context, orderID int64) ([]*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*transaction.Transaction
	for _, tx := range m.byRef {
		if tx.OrderID == orderID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) GetByUniqueRef(ctx context.Context, uniqueRef string) (*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.byRef[uniqueRef]
	if !ok {
		return nil, domainErrors.ErrTransactionNotFound
	}
	return tx, nil
}

// Count returns the number of stored records.
func (m *MockTransactionRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byRef)
}

// --- Order Sink Mock ---

// MockOrderSink records the order side effects applied on approval.
type MockOrderSink struct {
	mu sync.Mutex

	PaidOrders       map[int64]string // order id -> unique ref
	StockDecremented []int64
	CartsCleared     []int64

	MarkPaidFunc       func(ctx context.Context, orderID int64, uniqueRef string) error
	DecrementStockFunc func(ctx context.Context, orderID int64) error
	ClearCartFunc      func(ctx context.Context, orderID int64) error
}

func NewMockOrderSink() *MockOrderSink {
	return &MockOrderSink{PaidOrders: make(map[int64]string)}
}

func (m *MockOrderSink) MarkPaid(ctx context.Context, orderID int64, uniqueRef string) error {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, orderID, uniqueRef)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaidOrders[orderID] = uniqueRef
	return nil
}

func (m *MockOrderSink) DecrementStock(ctx context.Context, orderID int64) error {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StockDecremented = append(m.StockDecremented, orderID)
	return nil
}

func (m *MockOrderSink) ClearCart(ctx context.Context, orderID int64) error {
	if m.ClearCartFunc != nil {
		return m.ClearCartFunc(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CartsCleared = append(m.CartsCleared, orderID)
	return nil
}

// --- Gateway Mock ---

// MockGateway returns a scripted response body or error and remembers the
// last submitted request.
type MockGateway struct {
	mu sync.Mutex

	Response []byte
	Err      error

	Submitted []*nuvei.Request
}

func (m *MockGateway) Submit(ctx context.Context, endpoint string, req *nuvei.Request) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submitted = append(m.Submitted, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

// LastRequest returns the most recently submitted request, or nil.
func (m *MockGateway) LastRequest() *nuvei.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Submitted) == 0 {
		return nil
	}
	return m.Submitted[len(m.Submitted)-1]
}

// --- Credentials Source ---

// StaticCredentials is a CredentialsSource returning fixed credentials.
type StaticCredentials struct {
	Creds nuvei.Credentials
	Err   error
}

func (s StaticCredentials) Credentials() (nuvei.Credentials, error) {
	return s.Creds, s.Err
}
