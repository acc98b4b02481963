// Package confloader reads the discovery configuration with koanf.
//
// Sources, later overriding earlier: built-in defaults, the optional YAML file, environment variables.
// Every Read starts from scratch, so edits to the file or the environment apply to the next round.
package confloader

import (
	"fmt"
	"strings"
	"time"

	"mymembership/domain"
	"mymembership/interfaces"
	"mymembership/service"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "MEMBERSHIP_"

// Defaults mirror the values a fresh cluster node uses when nothing is configured.
const (
	DefaultKeyPrefix        = "/hivemq/discovery"
	DefaultExpiration       = 360
	DefaultUpdateInterval   = 180
	DefaultStorePort        = 2379
	DefaultDialTimeoutMs    = 5000
	DefaultRequestTimeoutMs = 5000
)

type storeSection struct {
	Backend          string `koanf:"backend"`
	Endpoint         string `koanf:"endpoint"`
	Port             int    `koanf:"port"`
	UseTLS           bool   `koanf:"use-tls"`
	CAPath           string `koanf:"ca-path"`
	Username         string `koanf:"username"`
	Password         string `koanf:"password"`
	DialTimeoutMs    int64  `koanf:"dial-timeout-ms"`
	RequestTimeoutMs int64  `koanf:"request-timeout-ms"`
}

type fileConfig struct {
	Key              string       `koanf:"key"`
	Expiration       int64        `koanf:"expiration"`
	UpdateInterval   int64        `koanf:"update-interval"`
	MalformedEntries string       `koanf:"malformed-entries"`
	Store            storeSection `koanf:"store"`
}

// Loader implements interfaces.ConfigSource.
type Loader struct {
	envPrefix string
	filePath  string
}

var _ interfaces.ConfigSource = (*Loader)(nil)

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the YAML file path. Empty means no file.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Read loads, normalizes and validates the configuration.
//
// Returns configuration_invalid when the file cannot be read or parsed, a value has the wrong type, or
// the result fails domain.RegistryConfig.Validate.
func (l *Loader) Read() (domain.RegistryConfig, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return domain.RegistryConfig{}, service.NewConfigurationInvalidError("could not load defaults", err)
	}
	if l.filePath != "" {
		if err := k.Load(file.Provider(l.filePath), yaml.Parser()); err != nil {
			return domain.RegistryConfig{}, service.NewConfigurationInvalidError(
				fmt.Sprintf("could not load config file %s", l.filePath), err)
		}
	}
	if err := k.Load(env.Provider(l.envPrefix, ".", l.envKey), nil); err != nil {
		return domain.RegistryConfig{}, service.NewConfigurationInvalidError("could not load environment", err)
	}

	var fc fileConfig
	if err := k.Unmarshal("", &fc); err != nil {
		return domain.RegistryConfig{}, service.NewConfigurationInvalidError("could not decode configuration", err)
	}

	cfg := fc.toDomain()
	if err := cfg.Validate(); err != nil {
		return domain.RegistryConfig{}, service.NewConfigurationInvalidError("configuration is not valid", err)
	}
	return cfg, nil
}

// envKey maps MEMBERSHIP_STORE__USE_TLS to store.use-tls: "__" nests, "_" becomes "-".
func (l *Loader) envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
	parts := strings.Split(s, "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", "-")
	}
	return strings.Join(parts, ".")
}

func defaults() map[string]any {
	return map[string]any{
		"key":               DefaultKeyPrefix,
		"expiration":        DefaultExpiration,
		"update-interval":   DefaultUpdateInterval,
		"malformed-entries": string(domain.MalformedAbort),
		"store": map[string]any{
			"backend":            string(domain.StoreBackendEtcd),
			"port":               DefaultStorePort,
			"use-tls":            false,
			"dial-timeout-ms":    DefaultDialTimeoutMs,
			"request-timeout-ms": DefaultRequestTimeoutMs,
		},
	}
}

func (fc fileConfig) toDomain() domain.RegistryConfig {
	return domain.RegistryConfig{
		KeyPrefix:             domain.NormalizeKeyPrefix(fc.Key),
		ExpirationSeconds:     fc.Expiration,
		UpdateIntervalSeconds: fc.UpdateInterval,
		MalformedEntries:      domain.MalformedPolicy(strings.ToLower(strings.TrimSpace(fc.MalformedEntries))),
		Store: domain.StoreConfig{
			Backend:        domain.StoreBackend(strings.ToLower(strings.TrimSpace(fc.Store.Backend))),
			Endpoint:       strings.TrimSpace(fc.Store.Endpoint),
			Port:           fc.Store.Port,
			UseTLS:         fc.Store.UseTLS,
			CAPath:         strings.TrimSpace(fc.Store.CAPath),
			Username:       fc.Store.Username,
			Password:       fc.Store.Password,
			DialTimeout:    time.Duration(fc.Store.DialTimeoutMs) * time.Millisecond,
			RequestTimeout: time.Duration(fc.Store.RequestTimeoutMs) * time.Millisecond,
		},
	}
}
