package interfaces

import (
	"context"

	"mymembership/domain"
)

// KVStore is the minimal key-value store the registry needs: a replicated store with
// last-write-wins semantics, reached synchronously.
//
// Implemented by adapters/myredis and adapters/etcdkv; opened lazily by service.Registry.
//
//go:generate moq -stub -out mock/kv_store.go -pkg mock . KVStore
type KVStore interface {
	// Put writes value under key, replacing any previous value.
	// Returns: nil on success; store_unavailable when the store cannot be reached or rejects the write.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is a no-op and returns nil, because several members may
	// race to evict the same expired entry.
	// Returns: nil on success or absence; store_unavailable on store failure.
	Delete(ctx context.Context, key string) error

	// ListByPrefix returns every pair whose key starts with prefix, ordered by key.
	// Returns: (pairs, nil), possibly empty; (nil, store_unavailable) on store failure.
	ListByPrefix(ctx context.Context, prefix string) ([]domain.KeyValue, error)
}
