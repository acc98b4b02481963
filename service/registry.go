package service

import (
	"context"
	"fmt"
	"time"

	"mymembership/domain"
	"mymembership/helpers"
	"mymembership/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// StoreOpener opens a connection to the key-value store described by cfg.
type StoreOpener func(ctx context.Context, cfg domain.StoreConfig) (interfaces.KVStore, error)

// registry implements interfaces.Registry.
//
// Eviction is lazy and distributed: there is no sweeper, every member that lists the prefix deletes the
// expired entries it sees, whoever owns them. Several members may delete the same key concurrently;
// KVStore.Delete treats a missing key as success.
//
// The store connection is opened from the first valid configuration and reused for the lifetime of the
// registry; later configuration changes to the store section take effect only after a restart.
type registry struct {
	configSource interfaces.ConfigSource
	openStore    StoreOpener
	clock        interfaces.TimeProvider
	metrics      *Metrics
	logger       log.Logger

	store interfaces.KVStore
}

// NewRegistry creates the registration/discovery core. Panics on nil dependencies.
//
// Parameters: configSource is read at the start of every round; openStore is called once, on first need;
// clock stamps entries and checks expiry; metrics counts registrations and evictions; logger.
//
// Called from cmd/main; the returned Registry is driven by service.DiscoveryAgent.
func NewRegistry(
	configSource interfaces.ConfigSource,
	openStore StoreOpener,
	clock interfaces.TimeProvider,
	metrics *Metrics,
	logger log.Logger,
) interfaces.Registry {
	return &registry{
		configSource: helpers.NilPanic(configSource, "service.registry.go: configSource is required"),
		openStore:    helpers.NilPanic(openStore, "service.registry.go: openStore is required"),
		clock:        helpers.NilPanic(clock, "service.registry.go: clock is required"),
		metrics:      helpers.NilPanic(metrics, "service.registry.go: metrics is required"),
		logger:       log.WithPrefix(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "Registry"),
	}
}

// Init writes the own entry unconditionally and returns the live members.
//
// Returns: (addresses, nil) on success; (nil, configuration_invalid) with the session untouched;
// (nil, bad_parameter) for a blank ownID or nil address; (nil, store_unavailable) when the store cannot be
// opened, written, listed or swept; (partial, malformed_entry) when a stored value does not decode under the
// abort policy, partial holding the live addresses listed before it.
func (r *registry) Init(ctx context.Context, session *domain.RegistrySession, ownID string, ownAddress *domain.NodeAddress) ([]domain.NodeAddress, error) {
	cfg, store, err := r.prepare(ctx)
	if err != nil {
		return nil, fmt.Errorf("init failed to prepare round, err: %w", err)
	}

	if err := r.saveOwn(ctx, store, session, cfg, ownID, ownAddress); err != nil {
		return nil, fmt.Errorf("init failed to save own entry, err: %w", err)
	}
	session.UseConfig(cfg)

	return r.nodeAddresses(ctx, store, cfg)
}

// Reload refreshes the own entry only when none is remembered or the remembered one is older than the
// update interval, then lists and sweeps like Init. Error results match Init.
//
// The update interval is shorter than the expiration, so a live member rewrites its entry at least one
// reload before any peer would treat it as expired.
func (r *registry) Reload(ctx context.Context, session *domain.RegistrySession, ownID string, ownAddress *domain.NodeAddress) ([]domain.NodeAddress, error) {
	cfg, store, err := r.prepare(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload failed to prepare round, err: %w", err)
	}

	own := session.Own()
	if own == nil || own.IsExpired(cfg.UpdateIntervalSeconds, r.clock.Now()) {
		if err := r.saveOwn(ctx, store, session, cfg, ownID, ownAddress); err != nil {
			return nil, fmt.Errorf("reload failed to save own entry, err: %w", err)
		}
	} else {
		r.metrics.RefreshSkipped.Inc()
		level.Debug(r.logger).Log(
			"msg", "own entry is still fresh, skipping refresh",
			"node_id", ownID,
			"age", r.clock.Now().Sub(own.CreatedAt()).String(),
		)
	}
	session.UseConfig(cfg)

	return r.nodeAddresses(ctx, store, cfg)
}

// Destroy deletes the key the own entry was written under and tears the session down.
// Without a remembered own entry it is a no-op: no configuration read, no store call.
//
// Returns: nil on success or no-op; store_unavailable when the delete fails (the session keeps the entry,
// so a later Destroy can retry).
func (r *registry) Destroy(ctx context.Context, session *domain.RegistrySession, ownID string) error {
	if session.Own() == nil {
		level.Debug(r.logger).Log("msg", "no own entry registered, nothing to remove", "node_id", ownID)
		return nil
	}

	store, err := r.storeFor(ctx, session.Config().Store)
	if err != nil {
		return fmt.Errorf("destroy failed to open store, err: %w", err)
	}

	key := session.OwnKey()
	if err := store.Delete(ctx, key); err != nil {
		return fmt.Errorf("destroy failed to remove own entry, err: %w",
			NewStoreUnavailableError(fmt.Sprintf("could not delete key %q", key), err))
	}
	session.TearDown()

	level.Debug(r.logger).Log("msg", "removed own entry", "node_id", ownID, "key", key)
	return nil
}

// prepare reads the configuration and returns it with the (lazily opened) store.
func (r *registry) prepare(ctx context.Context) (domain.RegistryConfig, interfaces.KVStore, error) {
	cfg, err := r.configSource.Read()
	if err != nil {
		return domain.RegistryConfig{}, nil, NewConfigurationInvalidError("configuration could not be loaded", err)
	}
	store, err := r.storeFor(ctx, cfg.Store)
	if err != nil {
		return domain.RegistryConfig{}, nil, err
	}
	return cfg, store, nil
}

func (r *registry) storeFor(ctx context.Context, cfg domain.StoreConfig) (interfaces.KVStore, error) {
	if r.store != nil {
		return r.store, nil
	}
	store, err := r.openStore(ctx, cfg)
	if err != nil {
		return nil, NewStoreUnavailableError("could not open store", err)
	}
	level.Info(r.logger).Log("msg", "opened store", "backend", cfg.Backend, "endpoint", cfg.Endpoint, "port", cfg.Port, "tls", cfg.UseTLS)
	r.store = store
	return store, nil
}

// saveOwn writes a fresh own entry and records it in the session. The session is updated only after
// the write succeeds.
func (r *registry) saveOwn(
	ctx context.Context,
	store interfaces.KVStore,
	session *domain.RegistrySession,
	cfg domain.RegistryConfig,
	ownID string,
	ownAddress *domain.NodeAddress,
) error {
	entry, err := domain.NewNodeEntry(ownID, ownAddress, r.clock.Now())
	if err != nil {
		return FromDomainError("invalid own node entry", err)
	}

	key := cfg.KeyFor(ownID)
	if err := store.Put(ctx, key, entry.Serialize()); err != nil {
		return NewStoreUnavailableError(fmt.Sprintf("could not write key %q", key), err)
	}
	previousKey := session.OwnKey()
	session.Remember(entry, key)
	r.metrics.Registrations.Inc()
	level.Debug(r.logger).Log("msg", "updated own entry", "node_id", ownID, "key", key, "address", entry.Address().String())

	if previousKey != "" && previousKey != key {
		// The key prefix changed since the last write; the old key would otherwise linger until a peer evicts it.
		if err := store.Delete(ctx, previousKey); err != nil {
			level.Warn(r.logger).Log("msg", "could not remove own entry under previous key", "key", previousKey, "err", err)
		}
	}
	return nil
}

// nodeAddresses lists all entries under the prefix, deletes the expired ones and returns the addresses of
// the rest in key order.
func (r *registry) nodeAddresses(ctx context.Context, store interfaces.KVStore, cfg domain.RegistryConfig) ([]domain.NodeAddress, error) {
	kvs, err := store.ListByPrefix(ctx, cfg.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list node entries, err: %w",
			NewStoreUnavailableError(fmt.Sprintf("could not list prefix %q", cfg.KeyPrefix), err))
	}

	now := r.clock.Now()
	addresses := make([]domain.NodeAddress, 0, len(kvs))
	for _, kv := range kvs {
		entry, err := domain.DeserializeNodeEntry(kv.Value)
		if err != nil {
			r.metrics.MalformedEntries.Inc()
			if cfg.MalformedEntries == domain.MalformedSkip {
				level.Warn(r.logger).Log("msg", "skipping malformed node entry", "key", kv.Key, "err", err)
				continue
			}
			return addresses, fmt.Errorf("failed to read node entries, err: %w",
				NewMalformedEntryError(fmt.Sprintf("entry under key %q could not be decoded", kv.Key), err))
		}

		if entry.IsExpired(cfg.ExpirationSeconds, now) {
			// Delete the listed key; a record under a foreign key must not evict the node it names.
			key := kv.Key
			if expected := cfg.KeyFor(entry.NodeID()); expected != key {
				level.Warn(r.logger).Log("msg", "node entry is stored under a key that does not match its id", "key", key, "expected_key", expected, "node_id", entry.NodeID())
			}
			level.Debug(r.logger).Log(
				"msg", "node entry is expired, deleting",
				"node_id", entry.NodeID(),
				"key", key,
				"age", now.Sub(entry.CreatedAt()).Round(time.Millisecond).String(),
			)
			if err := store.Delete(ctx, key); err != nil {
				return nil, fmt.Errorf("failed to evict expired node entry, err: %w",
					NewStoreUnavailableError(fmt.Sprintf("could not delete key %q", key), err))
			}
			r.metrics.Evictions.Inc()
			continue
		}

		addresses = append(addresses, entry.Address())
	}

	r.metrics.DiscoveredNodes.Set(float64(len(addresses)))
	level.Debug(r.logger).Log("msg", "found node addresses", "count", len(addresses), "addresses", fmt.Sprint(addresses))
	return addresses, nil
}
