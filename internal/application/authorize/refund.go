package authorize

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vzabara/nuvei-gateway/internal/domain/order"
)

// RefundUseCase accepts every refund request without contacting the
// processor. This is a deliberate stub carried over from the original
// integration, where refunds are executed out-of-band by an external POS
// system and the storefront only needs to acknowledge them. No money
// moves here and the transaction record is never touched. Do not mistake
// an accepted refund for an executed one.
type RefundUseCase struct {
	logger zerolog.Logger
}

// NewRefundUseCase creates a new RefundUseCase.
func NewRefundUseCase(logger zerolog.Logger) *RefundUseCase {
	return &RefundUseCase{logger: logger}
}

// Execute acknowledges a refund request. It always succeeds.
func (uc *RefundUseCase) Execute(ctx context.Context, orderID int64, amount order.Amount, reason string) error {
	uc.logger.Warn().
		Int64("order_id", orderID).
		Str("amount", amount.String()).
		Str("reason", reason).
		Msg("refund acknowledged without contacting the processor (stub)")
	return nil
}
