package order

import (
	"fmt"

	"github.com/vzabara/nuvei-gateway/internal/domain/errors"
)

// Amount represents a monetary amount in the smallest currency unit (e.g. cents).
type Amount struct {
	ValueCents int64
	Currency   string
}

// Decimal renders the amount the way the gateway expects it on the wire,
// e.g. 4999 -> "49.99".
func (a Amount) Decimal() string {
	sign := ""
	cents := a.ValueCents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// String returns a human-readable representation of the amount.
func (a Amount) String() string {
	return a.Decimal() + " " + a.Currency
}

// Validate checks that the amount is valid.
func (a Amount) Validate() error {
	if a.ValueCents <= 0 {
		return errors.NewValidationError("amount", "must be greater than 0")
	}
	if len(a.Currency) != 3 {
		return errors.NewValidationError("currency", "must be a 3-letter ISO code")
	}
	return nil
}

// Context is the read-only order data one authorization attempt works on.
// The hosting storefront owns the order; this is just what the gateway needs.
type Context struct {
	ID        int64  // storefront order identifier, unique per order
	Amount    Amount // order total, > 0
	ReturnURL string // where to send the customer after a successful charge
}

// Validate checks the caller contract: a present order id and a positive amount.
func (c Context) Validate() error {
	if c.ID <= 0 {
		return errors.NewValidationError("order_id", "must be present and positive")
	}
	return c.Amount.Validate()
}
