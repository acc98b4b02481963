package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"mymembership/adapters"
)

// runNodes prints the members known to the service at NODES_API_URL (default: the local one on
// SERVICE_PORT_HTTP), one address per line, then the local registration. Used as "mymembership nodes" next to a running instance.
func runNodes(ctx context.Context, out io.Writer) error {
	baseURL := os.Getenv("NODES_API_URL")
	if baseURL == "" {
		port, err := requiredPort("SERVICE_PORT_HTTP")
		if err != nil {
			return err
		}
		baseURL = fmt.Sprintf("http://127.0.0.1:%d", port)
	}
	return printNodes(ctx, adapters.NodesHTTP(baseURL, &http.Client{Timeout: 10 * time.Second}), out)
}

func printNodes(ctx context.Context, client *adapters.NodesClient, out io.Writer) error {
	nodes, err := client.GetNodes(ctx, true)
	if err != nil {
		return fmt.Errorf("cant list nodes: %w", err)
	}
	for _, n := range nodes {
		fmt.Fprintln(out, n.String())
	}

	self, ok, err := client.GetSelf(ctx)
	if err != nil {
		return fmt.Errorf("cant read local node: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "# local node is not registered")
		return nil
	}
	fmt.Fprintf(out, "# local node %s registered at %s\n", self.NodeID, self.RegisteredAt.Format(time.RFC3339))
	return nil
}
