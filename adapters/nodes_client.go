package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mymembership/domain"
	"mymembership/helpers"
)

// NodesHTTP creates a client of the membership HTTP API: GET baseURL/v1/nodes and GET baseURL/v1/self.
// Panics on empty baseURL or nil client.
//
// Parameters: baseURL is the service base URL (e.g. http://127.0.0.1:8080), no trailing slash; client is the HTTP client.
//
// Called from cmd (nodes subcommand).
func NodesHTTP(baseURL string, client *http.Client) *NodesClient {
	return &NodesClient{
		baseURL: helpers.StrPanic(baseURL, "adapters.nodes_client.go: baseURL is required"),
		client:  helpers.NilPanic(client, "adapters.nodes_client.go: http client is required"),
	}
}

// NodesClient reads the membership view of a running service.
type NodesClient struct {
	baseURL string
	client  *http.Client
}

type nodesResponse struct {
	Nodes []nodeInfo `json:"nodes"`
}

type nodeInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// SelfInfo is the JSON shape of GET /v1/self.
type SelfInfo struct {
	NodeID       string    `json:"node_id"`
	Host         string    `json:"host"`
	Port         int       `json:"port"`
	State        string    `json:"state"`
	RegisteredAt time.Time `json:"registered_at"`
}

// GetNodes performs GET baseURL/v1/nodes?include_self=<includeSelf> with 5s timeout.
//
// Returns: (addresses, nil) on 200, possibly empty; (nil, error) on other status, network error or a body
// without the "nodes" field.
func (c *NodesClient) GetNodes(ctx context.Context, includeSelf bool) ([]domain.NodeAddress, error) {
	var raw nodesResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/nodes?include_self=%t", includeSelf), &raw); err != nil {
		return nil, err
	}
	if raw.Nodes == nil {
		return nil, fmt.Errorf("membership response missing nodes field")
	}
	out := make([]domain.NodeAddress, 0, len(raw.Nodes))
	for _, n := range raw.Nodes {
		out = append(out, domain.NodeAddress{Host: n.Host, Port: n.Port})
	}
	return out, nil
}

// GetSelf performs GET baseURL/v1/self with 5s timeout.
//
// Returns: (info, true, nil) on 200; (zero, false, nil) on 404, the local node is not registered;
// (zero, false, error) otherwise.
func (c *NodesClient) GetSelf(ctx context.Context) (SelfInfo, bool, error) {
	var info SelfInfo
	err := c.getJSON(ctx, "/v1/self", &info)
	if err == errNotFound {
		return SelfInfo{}, false, nil
	}
	if err != nil {
		return SelfInfo{}, false, err
	}
	return info, true, nil
}

var errNotFound = fmt.Errorf("membership returned %d", http.StatusNotFound)

func (c *NodesClient) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("membership returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
