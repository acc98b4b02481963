package interfaces

// HealthReporter publishes whether the local member is currently registered.
//
// Implemented by adapters/grpchealth. Called from service.DiscoveryAgent after every lifecycle round.
//
//go:generate moq -stub -out mock/health_reporter.go -pkg mock . HealthReporter
type HealthReporter interface {
	SetServing(serving bool)
}
