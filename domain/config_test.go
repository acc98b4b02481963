package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() RegistryConfig {
	return RegistryConfig{
		KeyPrefix:             "/hivemq/discovery/",
		ExpirationSeconds:     360,
		UpdateIntervalSeconds: 180,
		MalformedEntries:      MalformedAbort,
		Store: StoreConfig{
			Backend:        StoreBackendEtcd,
			Endpoint:       "etcd",
			Port:           2379,
			DialTimeout:    5 * time.Second,
			RequestTimeout: 5 * time.Second,
		},
	}
}

func TestRegistryConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *RegistryConfig)
		expectedError string
	}{
		{name: "valid", mutate: func(c *RegistryConfig) {}},
		{name: "both intervals disabled", mutate: func(c *RegistryConfig) { c.ExpirationSeconds, c.UpdateIntervalSeconds = 0, 0 }},
		{name: "skip policy", mutate: func(c *RegistryConfig) { c.MalformedEntries = MalformedSkip }},
		{name: "redis backend", mutate: func(c *RegistryConfig) { c.Store.Backend = StoreBackendRedis }},
		{name: "blank key", mutate: func(c *RegistryConfig) { c.KeyPrefix = "  " }, expectedError: "key prefix is empty"},
		{name: "negative expiration", mutate: func(c *RegistryConfig) { c.ExpirationSeconds = -1 }, expectedError: "expiration is negative"},
		{name: "negative update", mutate: func(c *RegistryConfig) { c.UpdateIntervalSeconds = -1 }, expectedError: "update interval is negative"},
		{name: "equal intervals", mutate: func(c *RegistryConfig) { c.UpdateIntervalSeconds = 360 }, expectedError: "same as the expiration"},
		{name: "update disabled only", mutate: func(c *RegistryConfig) { c.UpdateIntervalSeconds = 0 }, expectedError: "update interval is deactivated"},
		{name: "expiration disabled only", mutate: func(c *RegistryConfig) { c.ExpirationSeconds = 0 }, expectedError: "expiration is deactivated"},
		{name: "update above expiration", mutate: func(c *RegistryConfig) { c.UpdateIntervalSeconds = 400 }, expectedError: "larger than expiration"},
		{name: "unknown policy", mutate: func(c *RegistryConfig) { c.MalformedEntries = "ignore" }, expectedError: "malformed-entries"},
		{name: "unknown backend", mutate: func(c *RegistryConfig) { c.Store.Backend = "consul" }, expectedError: "store backend"},
		{name: "empty endpoint", mutate: func(c *RegistryConfig) { c.Store.Endpoint = "" }, expectedError: "store endpoint is empty"},
		{name: "port zero", mutate: func(c *RegistryConfig) { c.Store.Port = 0 }, expectedError: "store port"},
		{name: "port too large", mutate: func(c *RegistryConfig) { c.Store.Port = 70000 }, expectedError: "store port"},
		{name: "dial timeout zero", mutate: func(c *RegistryConfig) { c.Store.DialTimeout = 0 }, expectedError: "dial timeout"},
		{name: "request timeout zero", mutate: func(c *RegistryConfig) { c.Store.RequestTimeout = 0 }, expectedError: "request timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectedError == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfigurationInvalid)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestNormalizeKeyPrefix(t *testing.T) {
	assert.Equal(t, "/hivemq/discovery/", NormalizeKeyPrefix("/hivemq/discovery"))
	assert.Equal(t, "/hivemq/discovery/", NormalizeKeyPrefix(" /hivemq/discovery/ "))
	assert.Equal(t, "", NormalizeKeyPrefix("  "))
}

func TestRegistryConfig_KeyFor(t *testing.T) {
	assert.Equal(t, "/hivemq/discovery/node-1", validConfig().KeyFor("node-1"))
}
