package interfaces

import "mymembership/domain"

// Membership is the read side of the discovery agent used by the HTTP API.
//
//go:generate moq -stub -out mock/membership.go -pkg mock . Membership
type Membership interface {
	// Nodes returns the last known set of live member addresses (own address included).
	Nodes() []domain.NodeAddress

	// Self returns the local member, the session state and the own entry currently registered, if any.
	Self() (domain.Self, domain.SessionState, *domain.NodeEntry)
}
