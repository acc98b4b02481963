package adapters

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"mymembership/adapters/etcdkv"
	"mymembership/adapters/myredis"
	"mymembership/domain"
	"mymembership/helpers"
	"mymembership/interfaces"
)

// OpenKVStore connects to the store backend selected by cfg.Backend. Matches service.StoreOpener.
func OpenKVStore(ctx context.Context, cfg domain.StoreConfig) (interfaces.KVStore, error) {
	switch cfg.Backend {
	case domain.StoreBackendEtcd:
		client, err := etcdkv.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return etcdkv.NewKVStore(client, cfg.RequestTimeout), nil
	case domain.StoreBackendRedis:
		return openRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q: %w", cfg.Backend, domain.ErrConfigurationInvalid)
	}
}

func openRedis(ctx context.Context, cfg domain.StoreConfig) (interfaces.KVStore, error) {
	options := []myredis.ConfigOption{
		myredis.WithCredentials(cfg.Username, cfg.Password),
		myredis.WithTimeouts(cfg.DialTimeout, cfg.RequestTimeout),
	}
	if cfg.UseTLS {
		tlsCfg, err := helpers.ClientTLSConfig(cfg.CAPath)
		if err != nil {
			return nil, fmt.Errorf("cant build redis tls config: %w", err)
		}
		options = append(options, myredis.WithTLS(tlsCfg))
	}

	client, err := myredis.NewRedisUniversalClient("redis://"+net.JoinHostPort(cfg.Endpoint, strconv.Itoa(cfg.Port)), options...)
	if err != nil {
		return nil, err
	}

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cant reach redis at %s:%d: %w", cfg.Endpoint, cfg.Port, err)
	}
	return myredis.NewKVStore(client), nil
}
