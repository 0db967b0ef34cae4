// Package accessly provides a declarative authorization policy engine.
// A Policy names the actions that may be checked for one kind of object:
// general actions are checked against an actor alone, object actions
// against an actor plus a specific target. Each check first consults an
// optional per-action override, then falls back to a GrantSource, and the
// result is memoized for the lifetime of the bound Instance. This package
// has no dependencies on domain models or storage and can be reused
// across different applications.
//
// The package uses generics to allow any actor type:
//   - Policy[uint] for simple user ID based auth
//   - Policy[*User] for full user struct based auth
//   - Policy[*Claims] for JWT claims based auth
package accessly

// Policy is the definition-time configuration for one policy type: the
// object type it evaluates against, its action registrations, and its
// override slots. Configure it once at startup, then Bind it per actor.
// A is the actor type (must be comparable so grant sources can key on it).
type Policy[A comparable] struct {
	objectType string

	// action name -> caller-supplied numeric action id, tracked
	// independently per call shape. A name may appear in both maps.
	general map[string]int
	object  map[string]int

	generalOverrides map[string]GeneralOverride[A]
	objectOverrides  map[string]ObjectOverride[A]
}

// New creates a policy for the given object type (e.g. "user", "invoice").
// The object type identifies the class of target this policy evaluates
// against and scopes every grant lookup; a policy constructed with an
// empty object type fails all checks with ErrConfiguration.
func New[A comparable](objectType string) *Policy[A] {
	return &Policy[A]{
		objectType:       objectType,
		general:          make(map[string]int),
		object:           make(map[string]int),
		generalOverrides: make(map[string]GeneralOverride[A]),
		objectOverrides:  make(map[string]ObjectOverride[A]),
	}
}

// ObjectType returns the object type this policy was constructed with.
func (p *Policy[A]) ObjectType() string { return p.objectType }

// GeneralActions registers actions checked against the actor alone.
// Repeat calls merge into the existing registrations; the last id
// registered for a name wins.
func (p *Policy[A]) GeneralActions(actions map[string]int) {
	for name, id := range actions {
		p.general[name] = id
	}
}

// ObjectActions registers actions checked against the actor plus a
// target object. Merging follows the same last-write-wins rule as
// GeneralActions, independently of any general registration sharing
// the name.
func (p *Policy[A]) ObjectActions(actions map[string]int) {
	for name, id := range actions {
		p.object[name] = id
	}
}

// OverrideGeneral installs the override consulted for the no-object call
// shape of the named action. At most one general override exists per
// name; installing another replaces it. A nil fn removes the override.
func (p *Policy[A]) OverrideGeneral(name string, fn GeneralOverride[A]) {
	if fn == nil {
		delete(p.generalOverrides, name)
		return
	}
	p.generalOverrides[name] = fn
}

// OverrideObject installs the override consulted for the object call
// shape of the named action. It is independent of any general override
// sharing the name.
func (p *Policy[A]) OverrideObject(name string, fn ObjectOverride[A]) {
	if fn == nil {
		delete(p.objectOverrides, name)
		return
	}
	p.objectOverrides[name] = fn
}

// Extend returns a copy of the policy with the same object type, action
// registrations, and overrides. The copy is detached: further
// registrations on either policy do not affect the other. Use this to
// derive a policy that replaces individual overrides; a derived override
// that defers falls through to the grant source, never to the base
// policy's override.
func (p *Policy[A]) Extend() *Policy[A] {
	derived := New[A](p.objectType)
	for name, id := range p.general {
		derived.general[name] = id
	}
	for name, id := range p.object {
		derived.object[name] = id
	}
	for name, fn := range p.generalOverrides {
		derived.generalOverrides[name] = fn
	}
	for name, fn := range p.objectOverrides {
		derived.objectOverrides[name] = fn
	}
	return derived
}

// Bind creates an evaluation instance for one actor backed by the given
// grant source. The instance owns a private result cache sized for one
// logical request or session; discard it when the session ends. The
// source must be non-nil and safe for concurrent reads, but the instance
// itself must not be shared across goroutines.
func (p *Policy[A]) Bind(actor A, source GrantSource[A]) *Instance[A] {
	return &Instance[A]{
		policy: p,
		actor:  actor,
		source: source,
		cache:  make(map[cacheKey]bool),
	}
}
