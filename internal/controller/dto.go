package controller

import (
	"time"

	"github.com/vzabara/nuvei-gateway/internal/domain/card"
	"github.com/vzabara/nuvei-gateway/internal/domain/order"
	"github.com/vzabara/nuvei-gateway/internal/domain/transaction"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (float64 for money, validation
// tags). Controllers convert them to domain types before calling the use
// cases. Card fields are accepted raw; normalization happens in the domain.

// CardRequest carries the customer's card details for one authorization.
// None of these fields are ever echoed back or logged unmasked.
type CardRequest struct {
	Number string `json:"number" validate:"required,min=12,max=19"`
	Expiry string `json:"expiry" validate:"required,min=3,max=7"`
	Holder string `json:"holder" validate:"required"`
	CVV    string `json:"cvv" validate:"required,min=3,max=4"`
}

// AuthorizeRequest holds the input for charging an order.
type AuthorizeRequest struct {
	OrderID   int64       `json:"order_id" validate:"required,gt=0"`
	Amount    float64     `json:"amount" validate:"required,gt=0"`
	Currency  string      `json:"currency" validate:"required,len=3"`
	ReturnURL string      `json:"return_url" validate:"omitempty,url"`
	Card      CardRequest `json:"card" validate:"required"`
}

// RefundRequest holds the input for acknowledging a refund.
type RefundRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,len=3"`
	Reason   string  `json:"reason" validate:"omitempty,max=255"`
}

// --- Response DTOs ---

// AuthorizeResponse represents an approved charge.
type AuthorizeResponse struct {
	UniqueRef string `json:"unique_ref"`
	Redirect  string `json:"redirect,omitempty"`
	// RecordingPending signals that the charge succeeded but its durable
	// record needs operator attention.
	RecordingPending bool `json:"recording_pending,omitempty"`
}

// RefundResponse acknowledges a refund request.
type RefundResponse struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// TransactionResponse represents a settled transaction in API responses.
// The raw processor payload is deliberately not exposed.
type TransactionResponse struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	UniqueRef string    `json:"unique_ref"`
	SettledAt time.Time `json:"settled_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Conversion helpers ---

// FromTransaction converts a domain transaction to an API response.
func FromTransaction(t *transaction.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:        t.ID,
		OrderID:   t.OrderID,
		UniqueRef: t.UniqueRef,
		SettledAt: t.SettledAt,
		CreatedAt: t.CreatedAt,
	}
}

// toOrder converts the request to the domain order context.
func (r *AuthorizeRequest) toOrder() order.Context {
	return order.Context{
		ID:        r.OrderID,
		Amount:    order.Amount{ValueCents: floatToCents(r.Amount), Currency: r.Currency},
		ReturnURL: r.ReturnURL,
	}
}

// toCard converts the request to the domain card input.
func (r *AuthorizeRequest) toCard() card.Input {
	return card.Input{
		Number: r.Card.Number,
		Expiry: r.Card.Expiry,
		Holder: r.Card.Holder,
		CVV:    r.Card.CVV,
	}
}

// floatToCents converts a float dollar amount to cents.
func floatToCents(f float64) int64 {
	return int64(f*100 + 0.5)
}
