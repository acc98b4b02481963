package etcdkv

import (
	"fmt"
	"net"
	"strconv"

	"mymembership/domain"
	"mymembership/helpers"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// NewClient creates an etcd client for the single endpoint described by cfg.
//
// Without credentials the client connects lazily and an unreachable endpoint surfaces on the first request.
// With Username and Password set, clientv3.New authenticates before returning, so an unreachable endpoint
// blocks for up to cfg.DialTimeout and fails here.
func NewClient(cfg domain.StoreConfig) (*clientv3.Client, error) {
	clientCfg, err := clientConfig(cfg)
	if err != nil {
		return nil, err
	}
	client, err := clientv3.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("cant create etcd client for %v: %w", clientCfg.Endpoints, err)
	}
	return client, nil
}

func clientConfig(cfg domain.StoreConfig) (clientv3.Config, error) {
	scheme := "http"
	if cfg.UseTLS {
		scheme = "https"
	}
	clientCfg := clientv3.Config{
		Endpoints:   []string{scheme + "://" + net.JoinHostPort(cfg.Endpoint, strconv.Itoa(cfg.Port))},
		DialTimeout: cfg.DialTimeout,
		Username:    cfg.Username,
		Password:    cfg.Password,
	}
	if cfg.UseTLS {
		tlsCfg, err := helpers.ClientTLSConfig(cfg.CAPath)
		if err != nil {
			return clientv3.Config{}, fmt.Errorf("cant build etcd tls config: %w", err)
		}
		clientCfg.TLS = tlsCfg
	}
	return clientCfg, nil
}
