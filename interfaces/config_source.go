package interfaces

import "mymembership/domain"

// ConfigSource resolves the discovery configuration. The registry calls Read at the start of every
// round, so operators can change intervals without a restart.
//
//go:generate moq -stub -out mock/config_source.go -pkg mock . ConfigSource
type ConfigSource interface {
	// Read loads and validates the configuration.
	// Returns: (cfg, nil) with a normalized key prefix; (zero, configuration_invalid) when the source is
	// unreadable or the values violate domain.RegistryConfig.Validate.
	Read() (domain.RegistryConfig, error)
}
