package accessly

import "context"

// Decision is the outcome of an override. The zero value is Defer, so an
// override that falls off the end of its cases defers to the grant
// source rather than silently allowing or denying.
type Decision int

const (
	// Defer hands the check to the grant source.
	Defer Decision = iota
	// Allow short-circuits the check to true.
	Allow
	// Deny short-circuits the check to false.
	Deny
)

// String returns the decision name for logs and test failures.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return "defer"
	}
}

// GeneralOverride decides the no-object call shape of an action. It may
// short-circuit with Allow or Deny, or return Defer to fall back to the
// grant source.
type GeneralOverride[A comparable] func(ctx context.Context, actor A) Decision

// ObjectOverride decides the object call shape of an action. The object
// is passed as the Object interface; overrides type-assert to the
// concrete model when they need its fields.
type ObjectOverride[A comparable] func(ctx context.Context, actor A, obj Object) Decision
