package domain

import "errors"

// Sentinel errors of the membership domain. Callers match them with errors.Is;
// service.FromDomainError maps them onto MyError codes.
var (
	// ErrInvalidArgument means a constructor received input it can never accept (blank node id, absent address).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedEntry means a stored value is not a well-formed node entry.
	ErrMalformedEntry = errors.New("malformed node entry")
	// ErrConfigurationInvalid means the registry configuration violates its invariants.
	ErrConfigurationInvalid = errors.New("configuration invalid")
)
