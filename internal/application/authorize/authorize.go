package authorize

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/vzabara/nuvei-gateway/internal/domain/card"
	domainErrors "github.com/vzabara/nuvei-gateway/internal/domain/errors"
	"github.com/vzabara/nuvei-gateway/internal/domain/order"
	"github.com/vzabara/nuvei-gateway/internal/domain/transaction"
	"github.com/vzabara/nuvei-gateway/internal/gateway/nuvei"
)

// Result is the caller-facing outcome of a successful authorization.
type Result struct {
	UniqueRef string
	Redirect  string // storefront return URL for the customer
	// RecordingFailed is set when the charge went through but the
	// transaction record could not be written for a reason other than a
	// duplicate reference. The payment must not be reversed; the record
	// needs operator attention instead.
	RecordingFailed bool
}

// AuthorizeUseCase runs one end-to-end authorization attempt:
// validate, build, submit, classify, and on approval apply the order
// side effects and record the transaction. No stage is ever retried.
type AuthorizeUseCase struct {
	gateway      Gateway
	credentials  CredentialsSource
	transactions transaction.Repository
	orders       OrderSink
	logger       zerolog.Logger
	clock        func() time.Time
}

// Option configures an AuthorizeUseCase.
type Option func(*AuthorizeUseCase)

// WithClock overrides the time source, mainly for tests.
func WithClock(fn func() time.Time) Option {
	return func(uc *AuthorizeUseCase) { uc.clock = fn }
}

// NewAuthorizeUseCase creates a new AuthorizeUseCase.
func NewAuthorizeUseCase(
	gateway Gateway,
	credentials CredentialsSource,
	transactions transaction.Repository,
	orders OrderSink,
	logger zerolog.Logger,
	opts ...Option,
) *AuthorizeUseCase {
	uc := &AuthorizeUseCase{
		gateway:      gateway,
		credentials:  credentials,
		transactions: transactions,
		orders:       orders,
		logger:       logger,
		clock:        time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// Execute authorizes a single charge. On failure the returned error is one
// of: *errors.ValidationError or ErrMissingCredentials (caller contract),
// ErrGatewayUnreachable (transport), *errors.GatewayError (processor-side
// fault or uninterpretable response), *errors.DeclinedError (ordinary
// decline, message may be shown to the customer verbatim).
func (uc *AuthorizeUseCase) Execute(ctx context.Context, ord order.Context, in card.Input) (*Result, error) {
	creds, err := uc.credentials.Credentials()
	if err != nil {
		return nil, err
	}

	req, err := nuvei.BuildRequest(ord, in, creds, uc.clock())
	if err != nil {
		return nil, err
	}

	body, err := uc.gateway.Submit(ctx, creds.Endpoint, req)
	if err != nil {
		uc.attemptLog(req).Err(err).Msg("gateway transport failure")
		return nil, err
	}

	outcome := nuvei.Classify(body)
	switch outcome.Kind {
	case nuvei.OutcomeError:
		uc.attemptLog(req).Str("error_string", outcome.Message).Msg("gateway rejected transaction")
		return nil, domainErrors.NewGatewayError(outcome.Message)
	case nuvei.OutcomeDeclined:
		uc.attemptLog(req).Str("response_text", outcome.Message).Msg("transaction declined")
		return nil, domainErrors.NewDeclinedError(outcome.Message)
	}

	return uc.settle(ctx, ord, outcome, body), nil
}

// settle applies the approved-path side effects in order: mark the order
// paid, decrement stock, clear the cart, then persist the transaction
// record. The charge already happened, so failures past this point are
// logged and surfaced but never turn the result into a customer-facing
// failure and never reverse the payment.
func (uc *AuthorizeUseCase) settle(ctx context.Context, ord order.Context, outcome nuvei.Outcome, body []byte) *Result {
	res := &Result{UniqueRef: outcome.UniqueRef, Redirect: ord.ReturnURL}

	if err := uc.orders.MarkPaid(ctx, ord.ID, outcome.UniqueRef); err != nil {
		uc.logger.Error().Err(err).Int64("order_id", ord.ID).Str("unique_ref", outcome.UniqueRef).
			Msg("failed to mark order paid after approval")
	}
	if err := uc.orders.DecrementStock(ctx, ord.ID); err != nil {
		uc.logger.Error().Err(err).Int64("order_id", ord.ID).Msg("failed to decrement stock after approval")
	}
	if err := uc.orders.ClearCart(ctx, ord.ID); err != nil {
		uc.logger.Error().Err(err).Int64("order_id", ord.ID).Msg("failed to clear cart after approval")
	}

	settledAt := uc.clock()
	if ts, err := nuvei.ParseTimestamp(outcome.SettledAt); err == nil {
		settledAt = ts
	}

	rec, err := transaction.New(ord.ID, outcome.UniqueRef, string(body), settledAt)
	if err != nil {
		res.RecordingFailed = true
		uc.logger.Error().Err(err).Int64("order_id", ord.ID).Str("unique_ref", outcome.UniqueRef).
			Msg("approved response produced an unrecordable transaction")
		return res
	}

	if err := uc.transactions.Create(ctx, rec); err != nil {
		if errors.Is(err, domainErrors.ErrDuplicateTransaction) {
			// Already processed: the order-level effects are idempotent by
			// the order's own paid state, so this attempt still succeeded.
			uc.logger.Info().Int64("order_id", ord.ID).Str("unique_ref", outcome.UniqueRef).
				Msg("transaction already recorded")
			return res
		}
		res.RecordingFailed = true
		uc.logger.Error().Err(err).Int64("order_id", ord.ID).Str("unique_ref", outcome.UniqueRef).
			Msg("failed to record approved transaction")
	}
	return res
}

// attemptLog carries the operational detail for a failed attempt. The card
// number is masked to first and last four digits; the CVV, the full number
// and the shared secret never reach the log sink.
func (uc *AuthorizeUseCase) attemptLog(req *nuvei.Request) *zerolog.Event {
	return uc.logger.Error().
		Str("order_id", req.OrderID).
		Str("terminal_id", req.TerminalID).
		Str("amount", req.Amount).
		Str("currency", req.Currency).
		Str("card_number", card.Mask(req.CardNumber)).
		Str("card_type", req.CardType).
		Str("card_expiry", req.CardExpiry).
		Str("datetime", req.DateTime)
}
