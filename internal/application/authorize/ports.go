package authorize

import (
	"context"

	"github.com/vzabara/nuvei-gateway/internal/gateway/nuvei"
)

// Gateway submits a built authorization request to the processor and
// returns the raw response body.
type Gateway interface {
	Submit(ctx context.Context, endpoint string, req *nuvei.Request) ([]byte, error)
}

// CredentialsSource supplies merchant credentials fresh for every attempt.
// No caching: configuration changes take effect on the next authorization
// without a restart.
type CredentialsSource interface {
	Credentials() (nuvei.Credentials, error)
}

// OrderSink receives the storefront-side effects of an approved charge.
// Implementations must be idempotent by the order's own paid/unpaid state,
// since an authorization may be recorded as a duplicate after the order
// effects already ran.
type OrderSink interface {
	MarkPaid(ctx context.Context, orderID int64, uniqueRef string) error
	DecrementStock(ctx context.Context, orderID int64) error
	ClearCart(ctx context.Context, orderID int64) error
}
