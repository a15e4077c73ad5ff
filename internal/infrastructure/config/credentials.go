package config

import (
	"errors"

	"github.com/spf13/viper"
	"github.com/vzabara/nuvei-gateway/internal/gateway/nuvei"
)

// CredentialsSource reads merchant credentials fresh on every call, so a
// rotated shared secret or a changed endpoint applies to the next
// authorization attempt without a restart. Environment variables are
// consulted live; a config file is re-read on change.
type CredentialsSource struct {
	v *viper.Viper
}

// NewCredentialsSource builds a source over the same configuration
// locations Load uses.
func NewCredentialsSource() (*CredentialsSource, error) {
	v := newViper()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	} else {
		v.WatchConfig()
	}

	return &CredentialsSource{v: v}, nil
}

// Credentials returns the current merchant credentials. Completeness is
// checked per attempt by the caller, not here.
func (s *CredentialsSource) Credentials() (nuvei.Credentials, error) {
	return nuvei.Credentials{
		Endpoint:     s.v.GetString("gateway.endpoint"),
		TerminalID:   s.v.GetString("gateway.terminal_id"),
		SharedSecret: s.v.GetString("gateway.shared_secret"),
	}, nil
}
