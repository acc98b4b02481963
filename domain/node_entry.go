package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NodeAddress is a peer-reachable host/port pair advertised by a cluster member.
type NodeAddress struct {
	Host string
	Port int
}

// String returns host:port (IPv6 hosts are bracketed).
func (a NodeAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// NodeEntry is the record a member stores under <key prefix><node id> to announce itself.
// It is immutable: a refresh builds a new entry with a new creation time.
type NodeEntry struct {
	nodeID          string
	address         NodeAddress
	createdAtMillis int64
}

// nodeEntryJSON is the stored text encoding. Field names are shared with older
// members writing to the same prefix, so they must not change.
type nodeEntryJSON struct {
	ClusterID            string `json:"clusterId"`
	ClusterNodeIP        string `json:"clusterNodeIP"`
	ClusterNodePort      int    `json:"clusterNodePort"`
	CreationTimeInMillis int64  `json:"creationTimeInMillis"`
}

// NewNodeEntry creates an entry for nodeID at address, stamped with now.
// Returns ErrInvalidArgument when nodeID is blank or address is nil.
func NewNodeEntry(nodeID string, address *NodeAddress, now time.Time) (NodeEntry, error) {
	if strings.TrimSpace(nodeID) == "" {
		return NodeEntry{}, fmt.Errorf("node id must not be blank: %w", ErrInvalidArgument)
	}
	if address == nil {
		return NodeEntry{}, fmt.Errorf("node address must not be nil: %w", ErrInvalidArgument)
	}
	return NodeEntry{
		nodeID:          nodeID,
		address:         *address,
		createdAtMillis: now.UnixMilli(),
	}, nil
}

// NodeID returns the identifier the entry was created for.
func (e NodeEntry) NodeID() string {
	return e.nodeID
}

// Address returns the advertised host/port.
func (e NodeEntry) Address() NodeAddress {
	return e.address
}

// CreatedAt returns the creation timestamp with millisecond precision.
func (e NodeEntry) CreatedAt() time.Time {
	return time.UnixMilli(e.createdAtMillis)
}

// CreatedAtMillis returns the creation timestamp in Unix milliseconds.
func (e NodeEntry) CreatedAtMillis() int64 {
	return e.createdAtMillis
}

// IsExpired reports whether the entry is older than expirationSeconds at now.
// Zero disables expiration.
func (e NodeEntry) IsExpired(expirationSeconds int64, now time.Time) bool {
	if expirationSeconds == 0 {
		return false
	}
	return e.createdAtMillis+expirationSeconds*1000 < now.UnixMilli()
}

// Serialize returns the canonical JSON encoding stored as the entry value.
func (e NodeEntry) Serialize() []byte {
	// Marshalling a struct of strings and ints cannot fail.
	b, _ := json.Marshal(nodeEntryJSON{
		ClusterID:            e.nodeID,
		ClusterNodeIP:        e.address.Host,
		ClusterNodePort:      e.address.Port,
		CreationTimeInMillis: e.createdAtMillis,
	})
	return b
}

// DeserializeNodeEntry decodes a stored value. Unknown fields are ignored.
// Returns ErrInvalidArgument for empty or blank text and ErrMalformedEntry
// when the text does not decode into an entry with a node id.
func DeserializeNodeEntry(text []byte) (NodeEntry, error) {
	if len(bytes.TrimSpace(text)) == 0 {
		return NodeEntry{}, fmt.Errorf("entry content must not be blank: %w", ErrInvalidArgument)
	}
	var raw nodeEntryJSON
	if err := json.Unmarshal(text, &raw); err != nil {
		return NodeEntry{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	if strings.TrimSpace(raw.ClusterID) == "" {
		return NodeEntry{}, fmt.Errorf("%w: clusterId is missing", ErrMalformedEntry)
	}
	return NodeEntry{
		nodeID:          raw.ClusterID,
		address:         NodeAddress{Host: raw.ClusterNodeIP, Port: raw.ClusterNodePort},
		createdAtMillis: raw.CreationTimeInMillis,
	}, nil
}
