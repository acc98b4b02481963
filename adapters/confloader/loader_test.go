package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mymembership/domain"
	"mymembership/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "discovery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	assert.Equal(t, DefaultEnvPrefix, l.envPrefix)
	assert.Empty(t, l.filePath)

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/etc/discovery.yaml"))
	assert.Equal(t, "TEST_", l.envPrefix)
	assert.Equal(t, "/etc/discovery.yaml", l.filePath)
}

func TestLoader_Read_Defaults(t *testing.T) {
	t.Setenv("TEST_STORE__ENDPOINT", "etcd.local")

	cfg, err := NewLoader(WithEnvPrefix("TEST_")).Read()
	require.NoError(t, err)

	assert.Equal(t, domain.RegistryConfig{
		KeyPrefix:             "/hivemq/discovery/",
		ExpirationSeconds:     360,
		UpdateIntervalSeconds: 180,
		MalformedEntries:      domain.MalformedAbort,
		Store: domain.StoreConfig{
			Backend:        domain.StoreBackendEtcd,
			Endpoint:       "etcd.local",
			Port:           2379,
			DialTimeout:    5 * time.Second,
			RequestTimeout: 5 * time.Second,
		},
	}, cfg)
}

func TestLoader_Read_File(t *testing.T) {
	path := writeConfigFile(t, `
key: /cluster/members
expiration: 60
update-interval: 20
malformed-entries: Skip
store:
  backend: redis
  endpoint: " redis.local "
  port: 6380
  use-tls: true
  ca-path: /etc/ssl/ca.pem
  username: member
  password: secret
  dial-timeout-ms: 1500
  request-timeout-ms: 250
`)

	cfg, err := NewLoader(WithEnvPrefix("TEST_"), WithConfigFile(path)).Read()
	require.NoError(t, err)

	assert.Equal(t, "/cluster/members/", cfg.KeyPrefix)
	assert.Equal(t, int64(60), cfg.ExpirationSeconds)
	assert.Equal(t, int64(20), cfg.UpdateIntervalSeconds)
	assert.Equal(t, domain.MalformedSkip, cfg.MalformedEntries)
	assert.Equal(t, domain.StoreConfig{
		Backend:        domain.StoreBackendRedis,
		Endpoint:       "redis.local",
		Port:           6380,
		UseTLS:         true,
		CAPath:         "/etc/ssl/ca.pem",
		Username:       "member",
		Password:       "secret",
		DialTimeout:    1500 * time.Millisecond,
		RequestTimeout: 250 * time.Millisecond,
	}, cfg.Store)
}

func TestLoader_Read_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
expiration: 60
update-interval: 20
store:
  endpoint: etcd.local
`)
	t.Setenv("TEST_UPDATE_INTERVAL", "30")
	t.Setenv("TEST_STORE__USE_TLS", "true")
	t.Setenv("TEST_STORE__REQUEST_TIMEOUT_MS", "900")

	cfg, err := NewLoader(WithEnvPrefix("TEST_"), WithConfigFile(path)).Read()
	require.NoError(t, err)

	assert.Equal(t, int64(60), cfg.ExpirationSeconds)
	assert.Equal(t, int64(30), cfg.UpdateIntervalSeconds)
	assert.True(t, cfg.Store.UseTLS)
	assert.Equal(t, 900*time.Millisecond, cfg.Store.RequestTimeout)
}

func TestLoader_Read_ReReadsEveryCall(t *testing.T) {
	path := writeConfigFile(t, "store:\n  endpoint: etcd.local\n")
	l := NewLoader(WithEnvPrefix("TEST_"), WithConfigFile(path))

	cfg, err := l.Read()
	require.NoError(t, err)
	assert.Equal(t, int64(180), cfg.UpdateIntervalSeconds)

	require.NoError(t, os.WriteFile(path, []byte("update-interval: 10\nexpiration: 20\nstore:\n  endpoint: etcd.local\n"), 0o644))
	cfg, err = l.Read()
	require.NoError(t, err)
	assert.Equal(t, int64(10), cfg.UpdateIntervalSeconds)
	assert.Equal(t, int64(20), cfg.ExpirationSeconds)
}

func TestLoader_Read_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantMsg string
	}{
		{name: "missing endpoint", file: "key: /a\n", wantMsg: "store endpoint is empty"},
		{name: "blank key", file: "key: '  '\nstore:\n  endpoint: e\n", wantMsg: "key prefix is empty"},
		{name: "update equals expiration", file: "expiration: 10\nupdate-interval: 10\nstore:\n  endpoint: e\n", wantMsg: "same as the expiration"},
		{name: "update above expiration", file: "expiration: 10\nupdate-interval: 20\nstore:\n  endpoint: e\n", wantMsg: "larger than expiration"},
		{name: "only update disabled", file: "update-interval: 0\nstore:\n  endpoint: e\n", wantMsg: "update interval is deactivated"},
		{name: "unknown backend", file: "store:\n  endpoint: e\n  backend: consul\n", wantMsg: "store backend"},
		{name: "unknown policy", file: "malformed-entries: ignore\nstore:\n  endpoint: e\n", wantMsg: "malformed-entries"},
		{name: "port out of range", file: "store:\n  endpoint: e\n  port: 70000\n", wantMsg: "store port"},
		{name: "wrong type", file: "expiration: soon\nstore:\n  endpoint: e\n", wantMsg: "could not decode"},
		{name: "broken yaml", file: "store: [\n", wantMsg: "could not load config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.file)
			_, err := NewLoader(WithEnvPrefix("TEST_"), WithConfigFile(path)).Read()
			require.Error(t, err)
			assert.True(t, service.IsConfigurationInvalidError(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoader_Read_MissingFile(t *testing.T) {
	_, err := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))).Read()
	require.Error(t, err)
	assert.True(t, service.IsConfigurationInvalidError(err))
}

func TestLoader_EnvKey(t *testing.T) {
	l := NewLoader()
	assert.Equal(t, "update-interval", l.envKey("MEMBERSHIP_UPDATE_INTERVAL"))
	assert.Equal(t, "store.use-tls", l.envKey("MEMBERSHIP_STORE__USE_TLS"))
	assert.Equal(t, "key", l.envKey("MEMBERSHIP_KEY"))
}

func TestMapProvider(t *testing.T) {
	m := mapProvider{"a": 1}
	got, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, got)

	_, err = m.ReadBytes()
	assert.ErrorIs(t, err, ErrReadBytesNotSupported)
}
