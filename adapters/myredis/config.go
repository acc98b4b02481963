package myredis

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedisUniversalClient creates and configures instance of redis universal client.
func NewRedisUniversalClient(redisAddr string, options ...ConfigOption) (redis.UniversalClient, error) {
	redisOptions, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(redisOptions)
	}
	c := redis.NewUniversalClient(universalOptions(redisOptions))
	return c, nil
}

// ConfigOption configures the client.
type ConfigOption func(*redis.Options)

// WithCredentials sets ACL username and password. Empty values keep what the URL carried.
func WithCredentials(username, password string) ConfigOption {
	return func(o *redis.Options) {
		if username != "" {
			o.Username = username
		}
		if password != "" {
			o.Password = password
		}
	}
}

// WithTLS enables TLS with the given client configuration.
func WithTLS(cfg *tls.Config) ConfigOption {
	return func(o *redis.Options) {
		o.TLSConfig = cfg
	}
}

// WithTimeouts sets the dial timeout and the read/write timeout of a single command.
func WithTimeouts(dial, request time.Duration) ConfigOption {
	return func(o *redis.Options) {
		o.DialTimeout = dial
		o.ReadTimeout = request
		o.WriteTimeout = request
	}
}

func universalOptions(options *redis.Options) *redis.UniversalOptions {
	return &redis.UniversalOptions{
		Addrs:              []string{options.Addr},
		DB:                 options.DB,
		Username:           options.Username,
		Password:           options.Password,
		TLSConfig:          options.TLSConfig,
		ReadOnly:           false,
		MasterName:         "",
		WriteTimeout:       options.WriteTimeout,
		ReadTimeout:        options.ReadTimeout,
		DialTimeout:        options.DialTimeout,
		MaxRetries:         options.MaxRetries,
		PoolSize:           options.PoolSize,
		PoolTimeout:        options.PoolTimeout,
		MinIdleConns:       options.MinIdleConns,
		IdleTimeout:        options.IdleTimeout,
		IdleCheckFrequency: options.IdleCheckFrequency,
	}
}
