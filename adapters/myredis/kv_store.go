package myredis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mymembership/domain"
	"mymembership/interfaces"
	"mymembership/service"

	"github.com/go-redis/redis/v8"
)

// scanCount is the COUNT hint passed to SCAN.
const scanCount = 100

type kvStore struct {
	client redis.UniversalClient
}

// NewKVStore creates redis implementation of the key-value store port. Keys are used as-is; entries
// never carry a redis TTL, expiry is decided by the registry from the stored creation time.
func NewKVStore(client redis.UniversalClient) interfaces.KVStore {
	return &kvStore{client: client}
}

func (s *kvStore) Put(ctx context.Context, key string, value []byte) error {
	err := s.client.Set(ctx, key, value, 0).Err()
	if err != nil {
		return service.NewStoreUnavailableError("Redis write key error", fmt.Errorf("can't write key '%s' to redis, err: %w", key, err))
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	err := s.client.Del(ctx, key).Err()
	if err != nil {
		return service.NewStoreUnavailableError("Redis delete key error", fmt.Errorf("can't delete key '%s' from redis, err: %w", key, err))
	}
	return nil
}

// ListByPrefix scans the keys starting with prefix then fetches their values with one MGET.
// Keys removed between the scan and the MGET are left out.
func (s *kvStore) ListByPrefix(ctx context.Context, prefix string) ([]domain.KeyValue, error) {
	keys, err := s.scanKeys(ctx, escapeGlob(prefix)+"*")
	if err != nil {
		return nil, service.NewStoreUnavailableError("Redis scan keys error", fmt.Errorf("can't scan keys with prefix '%s', err: %w", prefix, err))
	}
	if len(keys) == 0 {
		return []domain.KeyValue{}, nil
	}
	sort.Strings(keys)

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, service.NewStoreUnavailableError("Redis get values error", fmt.Errorf("can't get %d values with prefix '%s', err: %w", len(keys), prefix, err))
	}

	kvs := make([]domain.KeyValue, 0, len(keys))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		kvs = append(kvs, domain.KeyValue{Key: keys[i], Value: []byte(str)})
	}
	return kvs, nil
}

func (s *kvStore) scanKeys(ctx context.Context, match string) ([]string, error) {
	seen := make(map[string]struct{})
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, match, scanCount).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range batch {
			seen[k] = struct{}{}
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	return keys, nil
}

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
