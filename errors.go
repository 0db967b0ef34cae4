package accessly

import "errors"

// Sentinel errors returned by Instance.Evaluate. Specific failures wrap
// these, so match with errors.Is.
var (
	// ErrInvalidArgument marks an unknown action name or an arity
	// mismatch: an object supplied for a general-only action, or omitted
	// for an object-only one.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfiguration marks a policy constructed without an object
	// type. It surfaces at the first check, not at registration time.
	ErrConfiguration = errors.New("policy misconfigured")
)
