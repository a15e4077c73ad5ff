// Package nuvei implements the Nuvei XML payment protocol: request
// signing and assembly, the outbound transport, and response
// classification. The wire format is fixed by the remote processor;
// nothing here may change field order, digest, or timestamp layout
// without breaking verification on the processor side.
package nuvei

import (
	"github.com/vzabara/nuvei-gateway/internal/domain/errors"
)

// Credentials identifies the merchant to the gateway. They are supplied
// fresh for every authorization attempt and are never logged or persisted.
type Credentials struct {
	Endpoint     string // payment XML endpoint URL
	TerminalID   string // processor-side merchant account identifier
	SharedSecret string // signing secret shared with the processor
}

// Validate checks that all three fields are present.
func (c Credentials) Validate() error {
	if c.Endpoint == "" || c.TerminalID == "" || c.SharedSecret == "" {
		return errors.ErrMissingCredentials
	}
	return nil
}
