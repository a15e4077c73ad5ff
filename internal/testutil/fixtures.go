package testutil

import (
	"github.com/vzabara/nuvei-gateway/internal/domain/card"
	"github.com/vzabara/nuvei-gateway/internal/domain/order"
	"github.com/vzabara/nuvei-gateway/internal/gateway/nuvei"
)

// TestCredentials returns complete merchant credentials for tests.
func TestCredentials() nuvei.Credentials {
	return nuvei.Credentials{
		Endpoint:     "https://testpayments.example.com/merchant/xmlpayment",
		TerminalID:   "6491002",
		SharedSecret: "topsecret",
	}
}

// TestOrder returns an order context with the given id and amount in cents.
func TestOrder(id int64, amountCents int64, currency string) order.Context {
	return order.Context{
		ID:        id,
		Amount:    order.Amount{ValueCents: amountCents, Currency: currency},
		ReturnURL: "https://shop.example.com/checkout/thank-you",
	}
}

// TestVisaCard returns valid VISA test card input.
func TestVisaCard() card.Input {
	return card.Input{
		Number: "4242424242424242",
		Expiry: "1229",
		Holder: "Jane Doe",
		CVV:    "123",
	}
}

// ApprovedResponse builds an approved gateway response body for uniqueRef.
func ApprovedResponse(uniqueRef string) []byte {
	return []byte(`<RESPONSE><RESPONSECODE>A</RESPONSECODE><RESPONSETEXT>APPROVAL</RESPONSETEXT><UNIQUEREF>` +
		uniqueRef + `</UNIQUEREF><DATETIME>29-08-2026:11:22:34:001</DATETIME></RESPONSE>`)
}

// DeclinedResponse builds a declined gateway response body.
func DeclinedResponse(text string) []byte {
	return []byte(`<RESPONSE><RESPONSECODE>D</RESPONSECODE><RESPONSETEXT>` + text + `</RESPONSETEXT></RESPONSE>`)
}

// ErrorResponse builds a hard-error gateway response body.
func ErrorResponse(errorString string) []byte {
	return []byte(`<ERROR><ERRORSTRING>` + errorString + `</ERRORSTRING></ERROR>`)
}
