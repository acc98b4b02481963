package service

import (
	"time"

	"mymembership/helpers"
	"mymembership/interfaces"
)

// timeProvider implements interfaces.TimeProvider with an injected now func.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
//
// Built in cmd/main with time.Now().UTC; tests pass a movable fixed clock.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

// Now returns current time from the injected function.
func (t *timeProvider) Now() time.Time {
	return t.now()
}
