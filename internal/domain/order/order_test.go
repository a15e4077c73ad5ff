package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	domainErrors "github.com/vzabara/nuvei-gateway/internal/domain/errors"
	"github.com/vzabara/nuvei-gateway/internal/domain/order"
)

func TestAmount_Decimal(t *testing.T) {
	assert.Equal(t, "49.99", order.Amount{ValueCents: 4999, Currency: "USD"}.Decimal())
	assert.Equal(t, "100.00", order.Amount{ValueCents: 10000, Currency: "EUR"}.Decimal())
	assert.Equal(t, "0.05", order.Amount{ValueCents: 5, Currency: "USD"}.Decimal())
	assert.Equal(t, "-1.50", order.Amount{ValueCents: -150, Currency: "USD"}.Decimal())
}

func TestAmount_String(t *testing.T) {
	assert.Equal(t, "49.99 USD", order.Amount{ValueCents: 4999, Currency: "USD"}.String())
}

func TestContext_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ctx     order.Context
		wantErr bool
	}{
		{"valid", order.Context{ID: 100, Amount: order.Amount{ValueCents: 4999, Currency: "USD"}}, false},
		{"missing order id", order.Context{Amount: order.Amount{ValueCents: 4999, Currency: "USD"}}, true},
		{"negative order id", order.Context{ID: -1, Amount: order.Amount{ValueCents: 4999, Currency: "USD"}}, true},
		{"zero amount", order.Context{ID: 100, Amount: order.Amount{ValueCents: 0, Currency: "USD"}}, true},
		{"negative amount", order.Context{ID: 100, Amount: order.Amount{ValueCents: -100, Currency: "USD"}}, true},
		{"bad currency", order.Context{ID: 100, Amount: order.Amount{ValueCents: 4999, Currency: "US"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Validate()
			if tt.wantErr {
				var ve *domainErrors.ValidationError
				assert.ErrorAs(t, err, &ve)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
