package nuvei

import "encoding/xml"

// OutcomeKind is the tri-state classification of a gateway response.
type OutcomeKind string

const (
	OutcomeApproved OutcomeKind = "approved"
	OutcomeDeclined OutcomeKind = "declined"
	OutcomeError    OutcomeKind = "error"
)

// Outcome is the parsed gateway response. Exactly one interpretation
// applies: Message carries the error string or decline text, UniqueRef
// and SettledAt are set only on approval.
type Outcome struct {
	Kind      OutcomeKind
	UniqueRef string
	SettledAt string // raw DATETIME field, see ParseTimestamp
	Message   string
}

const unknownGatewayError = "unknown gateway error"

// approvedCodes are the response codes treated as a successful charge.
// "R" (referred / approved with review) is deliberately not distinguished
// from "A"; the processor settles both.
var approvedCodes = map[string]bool{"A": true, "R": true}

// responseDoc mirrors the recognized top-level response fields. The root
// element name varies and is ignored, as are unrecognized children.
// Presence is what matters for classification, hence the pointers.
type responseDoc struct {
	ErrorString  *string `xml:"ERRORSTRING"`
	ResponseCode *string `xml:"RESPONSECODE"`
	UniqueRef    string  `xml:"UNIQUEREF"`
	DateTime     string  `xml:"DATETIME"`
	ResponseText *string `xml:"RESPONSETEXT"`
}

// Classify parses a raw response body into an Outcome. Rules are checked
// in priority order because the raw fields are not mutually exclusive:
//
//  1. ERRORSTRING present: hard gateway error, whatever else is set.
//  2. RESPONSECODE present and accepted: approved.
//  3. RESPONSETEXT present: ordinary decline.
//  4. anything else, including unparseable XML: an unknown gateway error;
//     never silently treated as success.
func Classify(raw []byte) Outcome {
	var doc responseDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return Outcome{Kind: OutcomeError, Message: unknownGatewayError}
	}

	switch {
	case doc.ErrorString != nil:
		return Outcome{Kind: OutcomeError, Message: *doc.ErrorString}
	case doc.ResponseCode != nil && approvedCodes[*doc.ResponseCode]:
		return Outcome{Kind: OutcomeApproved, UniqueRef: doc.UniqueRef, SettledAt: doc.DateTime}
	case doc.ResponseText != nil:
		return Outcome{Kind: OutcomeDeclined, Message: *doc.ResponseText}
	default:
		return Outcome{Kind: OutcomeError, Message: unknownGatewayError}
	}
}
