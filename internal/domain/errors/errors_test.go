package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("amount", "must be greater than 0")
	assert.Equal(t, "validation failed for field amount: must be greater than 0", err.Error())
}

func TestGatewayError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GatewayError
		expected string
	}{
		{
			name:     "with message",
			err:      NewGatewayError("INVALID TERMINALID"),
			expected: "gateway error: INVALID TERMINALID",
		},
		{
			name:     "empty message",
			err:      NewGatewayError(""),
			expected: "gateway error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDeclinedError_Error(t *testing.T) {
	err := NewDeclinedError("Insufficient funds")
	assert.Equal(t, "payment declined: Insufficient funds", err.Error())
}

func TestSentinels_AreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrGatewayUnreachable, ErrDuplicateTransaction))
	assert.False(t, errors.Is(ErrDuplicateTransaction, ErrTransactionNotFound))
	assert.False(t, errors.Is(ErrMissingCredentials, ErrInvalidInput))
}
