package interfaces

import "time"

// TimeProvider supplies the current time for entry timestamps and expiry checks.
// Injected so tests can move a fixed clock instead of sleeping.
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	Now() time.Time
}
