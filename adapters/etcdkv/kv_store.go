package etcdkv

import (
	"context"
	"fmt"
	"time"

	"mymembership/domain"
	"mymembership/interfaces"
	"mymembership/service"

	clientv3 "go.etcd.io/etcd/client/v3"
)

type kvStore struct {
	kv             clientv3.KV
	requestTimeout time.Duration
}

// NewKVStore creates etcd implementation of the key-value store port. Every request is bounded by
// requestTimeout; zero leaves the caller's context as the only bound.
func NewKVStore(kv clientv3.KV, requestTimeout time.Duration) interfaces.KVStore {
	return &kvStore{kv: kv, requestTimeout: requestTimeout}
}

func (s *kvStore) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.kv.Put(ctx, key, string(value)); err != nil {
		return service.NewStoreUnavailableError("etcd put error", fmt.Errorf("can't put key '%s' to etcd, err: %w", key, err))
	}
	return nil
}

// Delete removes key. etcd reports a missing key as zero deleted revisions, not as an error.
func (s *kvStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.kv.Delete(ctx, key); err != nil {
		return service.NewStoreUnavailableError("etcd delete error", fmt.Errorf("can't delete key '%s' from etcd, err: %w", key, err))
	}
	return nil
}

func (s *kvStore) ListByPrefix(ctx context.Context, prefix string) ([]domain.KeyValue, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.kv.Get(ctx, prefix, clientv3.WithPrefix(), clientv3.WithSort(clientv3.SortByKey, clientv3.SortAscend))
	if err != nil {
		return nil, service.NewStoreUnavailableError("etcd range error", fmt.Errorf("can't get keys with prefix '%s' from etcd, err: %w", prefix, err))
	}

	kvs := make([]domain.KeyValue, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		kvs = append(kvs, domain.KeyValue{Key: string(kv.Key), Value: kv.Value})
	}
	return kvs, nil
}

func (s *kvStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}
