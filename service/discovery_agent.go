package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mymembership/domain"
	"mymembership/helpers"
	"mymembership/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var _ interfaces.Membership = (*DiscoveryAgent)(nil)

type roundFunc func(ctx context.Context, session *domain.RegistrySession, ownID string, ownAddress *domain.NodeAddress) ([]domain.NodeAddress, error)

// DiscoveryAgent drives a Registry the way a cluster host drives a discovery callback: Init once at
// Start, Reload on a ticker, Destroy at Stop. It owns the RegistrySession and is the only caller of the
// registry, so lifecycle calls never overlap.
//
// Every round is a unit: a failure is logged and counted and the last known node set is kept. The one
// exception is malformed_entry, whose (possibly partial) list replaces the known set.
type DiscoveryAgent struct {
	registry       interfaces.Registry
	self           domain.Self
	reloadInterval time.Duration
	health         interfaces.HealthReporter
	metrics        *Metrics
	logger         log.Logger

	// roundMu serializes lifecycle calls and guards session.
	roundMu sync.Mutex
	session *domain.RegistrySession

	mu    sync.RWMutex
	nodes []domain.NodeAddress
	state domain.SessionState
	own   *domain.NodeEntry

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewDiscoveryAgent creates an agent for self. Panics on nil dependencies or a non-positive reloadInterval.
//
// Called from cmd/main.
func NewDiscoveryAgent(
	registry interfaces.Registry,
	self domain.Self,
	reloadInterval time.Duration,
	health interfaces.HealthReporter,
	metrics *Metrics,
	logger log.Logger,
) *DiscoveryAgent {
	if reloadInterval <= 0 {
		panic("service.discovery_agent.go: reloadInterval must be positive")
	}
	return &DiscoveryAgent{
		registry:       helpers.NilPanic(registry, "service.discovery_agent.go: registry is required"),
		self:           self,
		reloadInterval: reloadInterval,
		health:         helpers.NilPanic(health, "service.discovery_agent.go: health is required"),
		metrics:        helpers.NilPanic(metrics, "service.discovery_agent.go: metrics is required"),
		logger:         log.WithPrefix(helpers.NilPanic(logger, "service.discovery_agent.go: logger is required"), "component", "DiscoveryAgent", "node_id", self.NodeID),
		session:        domain.NewRegistrySession(),
		nodes:          []domain.NodeAddress{},
		state:          domain.SessionUnregistered,
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Start runs the init round synchronously, then reloads every reloadInterval in a goroutine until Stop is
// called or ctx is done. An init failure does not stop the loop: the next reload registers the node.
func (a *DiscoveryAgent) Start(ctx context.Context) {
	level.Info(a.logger).Log("msg", "starting discovery", "address", a.self.Address.String(), "reload_interval", a.reloadInterval.String())
	a.round(ctx, "init", a.registry.Init)
	go a.reloadLoop(ctx)
}

func (a *DiscoveryAgent) reloadLoop(ctx context.Context) {
	defer close(a.done)
	ticker := time.NewTicker(a.reloadInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.round(ctx, "reload", a.registry.Reload)
		case <-a.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends the reload loop and removes the own entry. Safe to call more than once; only the first call
// has an effect. Must be called after Start.
func (a *DiscoveryAgent) Stop(ctx context.Context) {
	a.stopOnce.Do(func() {
		close(a.stop)
		<-a.done

		a.roundMu.Lock()
		defer a.roundMu.Unlock()
		if err := a.registry.Destroy(ctx, a.session, a.self.NodeID); err != nil {
			a.countFailure("destroy", err)
			level.Error(a.logger).Log("msg", "destroy of the discovery session failed", "err", err)
		}
		a.publishSession()
		level.Info(a.logger).Log("msg", "discovery stopped")
	})
}

// Nodes returns a copy of the last known live member addresses.
func (a *DiscoveryAgent) Nodes() []domain.NodeAddress {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]domain.NodeAddress, len(a.nodes))
	copy(out, a.nodes)
	return out
}

// Self returns the local member, the session state and a copy of the own entry, if registered.
func (a *DiscoveryAgent) Self() (domain.Self, domain.SessionState, *domain.NodeEntry) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.own == nil {
		return a.self, a.state, nil
	}
	own := *a.own
	return a.self, a.state, &own
}

func (a *DiscoveryAgent) round(ctx context.Context, operation string, call roundFunc) {
	a.roundMu.Lock()
	defer a.roundMu.Unlock()
	defer a.publishSession()

	address := a.self.Address
	addresses, err := a.safeCall(ctx, call, &address)
	if err != nil {
		a.countFailure(operation, err)
		level.Error(a.logger).Log("msg", "discovery round failed, no update this round", "operation", operation, "err", err)
		if IsMalformedEntryError(err) {
			a.publishNodes(addresses)
		}
		return
	}
	a.publishNodes(addresses)
}

// safeCall keeps a panicking registry from taking the process down with it.
func (a *DiscoveryAgent) safeCall(ctx context.Context, call roundFunc, address *domain.NodeAddress) (addresses []domain.NodeAddress, err error) {
	defer func() {
		if p := recover(); p != nil {
			addresses = nil
			err = NewInternalServerError("discovery round panicked", fmt.Errorf("%v", p))
		}
	}()
	return call(ctx, a.session, a.self.NodeID, address)
}

func (a *DiscoveryAgent) countFailure(operation string, err error) {
	code := ToMyErrorCode(err)
	if code == "" {
		code = ErrInternalServerError
	}
	a.metrics.RoundFailures.WithLabelValues(operation, code).Inc()
}

func (a *DiscoveryAgent) publishNodes(addresses []domain.NodeAddress) {
	nodes := make([]domain.NodeAddress, len(addresses))
	copy(nodes, addresses)
	a.mu.Lock()
	a.nodes = nodes
	a.mu.Unlock()
	level.Debug(a.logger).Log("msg", "published node addresses", "count", len(nodes))
}

// publishSession copies the session into the read-side snapshot. Caller must hold roundMu.
func (a *DiscoveryAgent) publishSession() {
	state := a.session.State()
	var own *domain.NodeEntry
	if e := a.session.Own(); e != nil {
		entry := *e
		own = &entry
	}
	a.mu.Lock()
	a.state = state
	a.own = own
	a.mu.Unlock()
	a.health.SetServing(state == domain.SessionRegistered)
}
