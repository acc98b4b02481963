// Package domain holds the membership data model: node entries, registry configuration and the
// per-registry session. It performs no I/O.
package domain

// KeyValue is one (key, value) pair returned by a prefix listing.
type KeyValue struct {
	Key   string
	Value []byte
}

// Self identifies the local member: the node id and address it advertises.
type Self struct {
	NodeID  string
	Address NodeAddress
}
