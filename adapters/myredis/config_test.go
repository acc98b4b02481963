package myredis

import (
	"crypto/tls"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisUniversalClient(t *testing.T) {
	t.Run("valid URL returns client", func(t *testing.T) {
		client, err := NewRedisUniversalClient("redis://localhost:6379")
		require.NoError(t, err)
		require.NotNil(t, client)
		defer client.Close()
	})

	t.Run("invalid URL returns error", func(t *testing.T) {
		client, err := NewRedisUniversalClient("://invalid")
		require.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("with options returns client", func(t *testing.T) {
		client, err := NewRedisUniversalClient("redis://localhost:6379", func(o *redis.Options) {
			o.DialTimeout = time.Second
		})
		require.NoError(t, err)
		require.NotNil(t, client)
		defer client.Close()
	})
}

func TestConfigOptions(t *testing.T) {
	t.Run("credentials override the URL only when set", func(t *testing.T) {
		o := &redis.Options{Username: "url-user", Password: "url-pass"}
		WithCredentials("", "secret")(o)
		assert.Equal(t, "url-user", o.Username)
		assert.Equal(t, "secret", o.Password)
	})

	t.Run("tls and timeouts reach the universal options", func(t *testing.T) {
		tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
		o := &redis.Options{Addr: "redis:6379"}
		WithTLS(tlsCfg)(o)
		WithTimeouts(2*time.Second, 3*time.Second)(o)

		u := universalOptions(o)
		assert.Equal(t, []string{"redis:6379"}, u.Addrs)
		assert.Same(t, tlsCfg, u.TLSConfig)
		assert.Equal(t, 2*time.Second, u.DialTimeout)
		assert.Equal(t, 3*time.Second, u.ReadTimeout)
		assert.Equal(t, 3*time.Second, u.WriteTimeout)
	})
}
