package handlers

import (
	"time"

	"mymembership/domain"
)

// toNodesResponse converts member addresses to API response.
func toNodesResponse(nodes []domain.NodeAddress) NodesResponse {
	out := make([]NodeInfo, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, NodeInfo{
			Host: n.Host,
			Port: n.Port,
		})
	}
	return NodesResponse{Nodes: out}
}

// toSelfResponse converts the local member and its own entry to API response.
func toSelfResponse(self domain.Self, state domain.SessionState, own *domain.NodeEntry) SelfResponse {
	return SelfResponse{
		NodeID:       self.NodeID,
		Host:         self.Address.Host,
		Port:         self.Address.Port,
		State:        string(state),
		RegisteredAt: own.CreatedAt().UTC().Format(time.RFC3339Nano),
	}
}
