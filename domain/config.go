package domain

import (
	"fmt"
	"strings"
	"time"
)

// StoreBackend selects the key-value store implementation.
type StoreBackend string

const (
	StoreBackendEtcd  StoreBackend = "etcd"
	StoreBackendRedis StoreBackend = "redis"
)

// MalformedPolicy decides what a listing round does with a stored value that does not decode.
type MalformedPolicy string

const (
	// MalformedAbort fails the whole round with the addresses collected before the bad value.
	MalformedAbort MalformedPolicy = "abort"
	// MalformedSkip logs the bad value and continues with the remaining entries.
	MalformedSkip MalformedPolicy = "skip"
)

// KeySeparator terminates every normalized key prefix.
const KeySeparator = "/"

// StoreConfig describes how to reach the key-value store.
type StoreConfig struct {
	Backend        StoreBackend
	Endpoint       string
	Port           int
	UseTLS         bool
	CAPath         string
	Username       string
	Password       string
	DialTimeout    time.Duration
	RequestTimeout time.Duration
}

// RegistryConfig is the resolved discovery configuration. It is re-read on every round.
type RegistryConfig struct {
	KeyPrefix             string
	ExpirationSeconds     int64
	UpdateIntervalSeconds int64
	MalformedEntries      MalformedPolicy
	Store                 StoreConfig
}

// NormalizeKeyPrefix trims spaces and makes sure prefix ends with KeySeparator.
func NormalizeKeyPrefix(prefix string) string {
	p := strings.TrimSpace(prefix)
	if p != "" && !strings.HasSuffix(p, KeySeparator) {
		p += KeySeparator
	}
	return p
}

// KeyFor returns the store key of nodeID under the configured prefix.
func (c RegistryConfig) KeyFor(nodeID string) string {
	return c.KeyPrefix + nodeID
}

// Validate checks the configuration invariants. Every violation wraps ErrConfigurationInvalid.
//
// Expiration and update interval are either both zero (entries never expire and are never refreshed)
// or both positive with the update interval strictly below the expiration, so a live member always
// refreshes before any peer can evict it.
func (c RegistryConfig) Validate() error {
	if strings.TrimSpace(c.KeyPrefix) == "" {
		return invalidConfig("key prefix is empty")
	}
	if c.ExpirationSeconds < 0 {
		return invalidConfig("expiration is negative")
	}
	if c.UpdateIntervalSeconds < 0 {
		return invalidConfig("update interval is negative")
	}
	if c.UpdateIntervalSeconds != 0 || c.ExpirationSeconds != 0 {
		if c.UpdateIntervalSeconds == c.ExpirationSeconds {
			return invalidConfig("update interval is the same as the expiration interval")
		}
		if c.UpdateIntervalSeconds == 0 {
			return invalidConfig("update interval is deactivated but expiration is set")
		}
		if c.ExpirationSeconds == 0 {
			return invalidConfig("expiration is deactivated but update interval is set")
		}
		if c.UpdateIntervalSeconds > c.ExpirationSeconds {
			return invalidConfig("update interval is larger than expiration interval")
		}
	}
	switch c.MalformedEntries {
	case MalformedAbort, MalformedSkip:
	default:
		return invalidConfig(fmt.Sprintf("malformed-entries must be %s|%s, got %q", MalformedAbort, MalformedSkip, c.MalformedEntries))
	}
	return c.Store.Validate()
}

// Validate checks the store connection settings.
func (s StoreConfig) Validate() error {
	switch s.Backend {
	case StoreBackendEtcd, StoreBackendRedis:
	default:
		return invalidConfig(fmt.Sprintf("store backend must be %s|%s, got %q", StoreBackendEtcd, StoreBackendRedis, s.Backend))
	}
	if strings.TrimSpace(s.Endpoint) == "" {
		return invalidConfig("store endpoint is empty")
	}
	if s.Port <= 0 || s.Port > 65535 {
		return invalidConfig(fmt.Sprintf("store port must be 1-65535, got %d", s.Port))
	}
	if s.DialTimeout <= 0 {
		return invalidConfig("store dial timeout must be positive")
	}
	if s.RequestTimeout <= 0 {
		return invalidConfig("store request timeout must be positive")
	}
	return nil
}

func invalidConfig(reason string) error {
	return fmt.Errorf("%w: %s", ErrConfigurationInvalid, reason)
}
