package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeAPI(t *testing.T, selfStatus int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/nodes":
			_, _ = w.Write([]byte(`{"nodes":[{"host":"10.0.0.1","port":7800},{"host":"10.0.0.2","port":7800}]}`))
		case "/v1/self":
			w.WriteHeader(selfStatus)
			if selfStatus == http.StatusOK {
				_, _ = w.Write([]byte(`{"node_id":"node-a","host":"10.0.0.1","port":7800,"state":"registered","registered_at":"2026-02-11T12:00:00Z"}`))
			} else {
				_, _ = w.Write([]byte(`{"error":{"code":"entity_not_found","message":"local node is not registered"}}`))
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunNodes(t *testing.T) {
	srv := newFakeAPI(t, http.StatusOK)
	t.Setenv("SERVICE_PORT_HTTP", "8080")
	t.Setenv("NODES_API_URL", srv.URL)

	var out bytes.Buffer
	require.NoError(t, runNodes(context.Background(), &out))
	assert.Equal(t, "10.0.0.1:7800\n10.0.0.2:7800\n# local node node-a registered at 2026-02-11T12:00:00Z\n", out.String())
}

func TestRunNodes_APIURLWithoutPort(t *testing.T) {
	srv := newFakeAPI(t, http.StatusOK)
	t.Setenv("SERVICE_PORT_HTTP", "")
	t.Setenv("NODES_API_URL", srv.URL)

	var out bytes.Buffer
	require.NoError(t, runNodes(context.Background(), &out))
	assert.Contains(t, out.String(), "10.0.0.1:7800\n")
}

func TestRunNodes_NotRegistered(t *testing.T) {
	srv := newFakeAPI(t, http.StatusNotFound)
	t.Setenv("SERVICE_PORT_HTTP", "8080")
	t.Setenv("NODES_API_URL", srv.URL)

	var out bytes.Buffer
	require.NoError(t, runNodes(context.Background(), &out))
	assert.Contains(t, out.String(), "# local node is not registered")
}

func TestRunNodes_Errors(t *testing.T) {
	t.Run("port required without api url", func(t *testing.T) {
		t.Setenv("NODES_API_URL", "")
		t.Setenv("SERVICE_PORT_HTTP", "")
		err := runNodes(context.Background(), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SERVICE_PORT_HTTP is required")
	})

	t.Run("service down", func(t *testing.T) {
		srv := newFakeAPI(t, http.StatusOK)
		srv.Close()
		t.Setenv("SERVICE_PORT_HTTP", "8080")
		t.Setenv("NODES_API_URL", srv.URL)

		err := runNodes(context.Background(), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cant list nodes")
	})
}
