package interfaces

import (
	"context"

	"mymembership/domain"
)

// Registry is the self-registration and discovery core. Every call receives the caller's session;
// a single session must not be used concurrently.
//
// Implemented by service.registry. Driven by service.DiscoveryAgent.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// Init writes the own entry unconditionally, then lists, evicts expired entries and returns the
	// addresses of live members (own address included).
	Init(ctx context.Context, session *domain.RegistrySession, ownID string, ownAddress *domain.NodeAddress) ([]domain.NodeAddress, error)

	// Reload behaves like Init but rewrites the own entry only when none is remembered or the remembered
	// one is older than the update interval.
	Reload(ctx context.Context, session *domain.RegistrySession, ownID string, ownAddress *domain.NodeAddress) ([]domain.NodeAddress, error)

	// Destroy deletes the remembered own entry and tears the session down. Without a remembered entry it
	// makes no store calls.
	Destroy(ctx context.Context, session *domain.RegistrySession, ownID string) error
}
