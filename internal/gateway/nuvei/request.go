package nuvei

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/vzabara/nuvei-gateway/internal/domain/card"
	"github.com/vzabara/nuvei-gateway/internal/domain/order"
)

// Fixed protocol codes for card-not-present e-commerce sales.
const (
	terminalTypeEcommerce    = "2"
	transactionTypeEcommerce = "7"
)

// Request is one outbound <PAYMENT> document. Field order matters: the
// gateway reads the children positionally as well as by name.
type Request struct {
	XMLName         xml.Name `xml:"PAYMENT"`
	OrderID         string   `xml:"ORDERID"`
	TerminalID      string   `xml:"TERMINALID"`
	Amount          string   `xml:"AMOUNT"`
	DateTime        string   `xml:"DATETIME"`
	CardNumber      string   `xml:"CARDNUMBER"`
	CardType        string   `xml:"CARDTYPE"`
	CardExpiry      string   `xml:"CARDEXPIRY"`
	CardHolderName  string   `xml:"CARDHOLDERNAME"`
	Hash            string   `xml:"HASH"`
	Currency        string   `xml:"CURRENCY"`
	TerminalType    string   `xml:"TERMINALTYPE"`
	TransactionType string   `xml:"TRANSACTIONTYPE"`
	CVV             string   `xml:"CVV"`
}

// BuildRequest assembles a signed authorization request from order data,
// normalized card input and merchant credentials. Pure transform, no I/O.
// It fails only on caller contract violations: missing credentials, a
// missing order id, or a non-positive amount.
func BuildRequest(ord order.Context, in card.Input, creds Credentials, now time.Time) (*Request, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if err := ord.Validate(); err != nil {
		return nil, err
	}

	in = in.Normalized()
	orderID := strconv.FormatInt(ord.ID, 10)
	amount := ord.Amount.Decimal()
	ts := Timestamp(now)

	return &Request{
		OrderID:         orderID,
		TerminalID:      creds.TerminalID,
		Amount:          amount,
		DateTime:        ts,
		CardNumber:      in.Number,
		CardType:        string(card.DetectBrand(in.Number)),
		CardExpiry:      in.Expiry,
		CardHolderName:  in.Holder,
		Hash:            Sign(creds.TerminalID, orderID, amount, ts, creds.SharedSecret),
		Currency:        ord.Amount.Currency,
		TerminalType:    terminalTypeEcommerce,
		TransactionType: transactionTypeEcommerce,
		CVV:             in.CVV,
	}, nil
}

// Encode serializes the request with the XML declaration the gateway expects.
func (r *Request) Encode() ([]byte, error) {
	body, err := xml.MarshalIndent(r, "", "    ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
