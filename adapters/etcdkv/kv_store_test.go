package etcdkv

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"mymembership/domain"
	"mymembership/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// fakeKV is an in-memory clientv3.KV covering Put, Get and Delete.
type fakeKV struct {
	clientv3.KV

	mu        sync.Mutex
	data      map[string]string
	err       error
	deadlines []bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) record(ctx context.Context) error {
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
	return f.err
}

func (f *fakeKV) Put(ctx context.Context, key, val string, opts ...clientv3.OpOption) (*clientv3.PutResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	f.data[key] = val
	return &clientv3.PutResponse{}, nil
}

func (f *fakeKV) Delete(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.DeleteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	var deleted int64
	if _, ok := f.data[key]; ok {
		delete(f.data, key)
		deleted = 1
	}
	return &clientv3.DeleteResponse{Deleted: deleted}, nil
}

func (f *fakeKV) Get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	op := clientv3.OpGet(key, opts...)
	end := string(op.RangeBytes())

	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		if k == key || (end != "" && k >= key && k < end) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	resp := &clientv3.GetResponse{}
	for _, k := range keys {
		resp.Kvs = append(resp.Kvs, &mvccpb.KeyValue{Key: []byte(k), Value: []byte(f.data[k])})
	}
	resp.Count = int64(len(resp.Kvs))
	return resp, nil
}

func TestKVStore_PutAndDelete(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := NewKVStore(kv, time.Second)

	require.NoError(t, store.Put(ctx, "/hivemq/discovery/a", []byte(`{"clusterId":"a"}`)))
	assert.Equal(t, `{"clusterId":"a"}`, kv.data["/hivemq/discovery/a"])

	require.NoError(t, store.Delete(ctx, "/hivemq/discovery/a"))
	assert.NotContains(t, kv.data, "/hivemq/discovery/a")
	require.NoError(t, store.Delete(ctx, "/hivemq/discovery/a"), "deleting an absent key is not an error")

	assert.Equal(t, []bool{true, true, true}, kv.deadlines, "every request carries the request timeout")
}

func TestKVStore_ListByPrefix(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.data["/hivemq/discovery/c"] = "3"
	kv.data["/hivemq/discovery/a"] = "1"
	kv.data["/hivemq/discovery/b"] = "2"
	kv.data["/hivemq/discoverz"] = "outside"
	kv.data["/hivemq/discovery"] = "parent"
	store := NewKVStore(kv, 0)

	kvs, err := store.ListByPrefix(ctx, "/hivemq/discovery/")
	require.NoError(t, err)
	assert.Equal(t, []domain.KeyValue{
		{Key: "/hivemq/discovery/a", Value: []byte("1")},
		{Key: "/hivemq/discovery/b", Value: []byte("2")},
		{Key: "/hivemq/discovery/c", Value: []byte("3")},
	}, kvs)
	assert.Equal(t, []bool{false}, kv.deadlines, "zero request timeout adds no deadline")

	kvs, err = store.ListByPrefix(ctx, "/nothing/")
	require.NoError(t, err)
	assert.NotNil(t, kvs)
	assert.Empty(t, kvs)
}

func TestKVStore_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.err = context.DeadlineExceeded
	store := NewKVStore(kv, time.Second)

	err := store.Put(ctx, "k", []byte("v"))
	require.Error(t, err)
	assert.True(t, service.IsStoreUnavailableError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = store.Delete(ctx, "k")
	require.Error(t, err)
	assert.True(t, service.IsStoreUnavailableError(err))

	kvs, err := store.ListByPrefix(ctx, "/hivemq/discovery/")
	require.Error(t, err)
	assert.Nil(t, kvs)
	assert.True(t, service.IsStoreUnavailableError(err))
}
