package accessly

import "context"

// GrantSource answers whether an actor holds a stored grant. It is the
// engine's only view of the durable grant store; implementations must be
// pure reads and must report absence of data as false, never as an
// error. Any error returned propagates unchanged to the Evaluate caller
// and is not cached.
//
// The object type is the policy's configured type. General grants are
// recorded against an object type with no particular object, so it is
// present on both query shapes. Segment scoping, if any, belongs to the
// implementation; the engine is segment-agnostic.
type GrantSource[A any] interface {
	// HasGeneralGrant reports whether actor holds the action for the
	// object type as a whole, independent of any object.
	HasGeneralGrant(ctx context.Context, actor A, actionID int, objectType string) (bool, error)

	// HasObjectGrant reports whether actor holds the action for one
	// specific object of the type.
	HasObjectGrant(ctx context.Context, actor A, actionID int, objectType string, objectID uint) (bool, error)
}

type generalGrantKey[A comparable] struct {
	actor      A
	actionID   int
	objectType string
}

type objectGrantKey[A comparable] struct {
	actor      A
	actionID   int
	objectType string
	objectID   uint
}

// StaticGrants is an in-memory GrantSource.
// Useful for testing or static configuration.
type StaticGrants[A comparable] struct {
	general map[generalGrantKey[A]]bool
	object  map[objectGrantKey[A]]bool
}

// NewStaticGrants creates an empty in-memory grant source.
func NewStaticGrants[A comparable]() *StaticGrants[A] {
	return &StaticGrants[A]{
		general: make(map[generalGrantKey[A]]bool),
		object:  make(map[objectGrantKey[A]]bool),
	}
}

// GrantGeneral records a general grant for the actor.
func (s *StaticGrants[A]) GrantGeneral(actor A, actionID int, objectType string) {
	s.general[generalGrantKey[A]{actor, actionID, objectType}] = true
}

// Grant records an object grant for the actor.
func (s *StaticGrants[A]) Grant(actor A, actionID int, objectType string, objectID uint) {
	s.object[objectGrantKey[A]{actor, actionID, objectType, objectID}] = true
}

// RevokeGeneral removes a previously recorded general grant.
func (s *StaticGrants[A]) RevokeGeneral(actor A, actionID int, objectType string) {
	delete(s.general, generalGrantKey[A]{actor, actionID, objectType})
}

// Revoke removes a previously recorded object grant.
func (s *StaticGrants[A]) Revoke(actor A, actionID int, objectType string, objectID uint) {
	delete(s.object, objectGrantKey[A]{actor, actionID, objectType, objectID})
}

// HasGeneralGrant implements GrantSource.
func (s *StaticGrants[A]) HasGeneralGrant(_ context.Context, actor A, actionID int, objectType string) (bool, error) {
	return s.general[generalGrantKey[A]{actor, actionID, objectType}], nil
}

// HasObjectGrant implements GrantSource.
func (s *StaticGrants[A]) HasObjectGrant(_ context.Context, actor A, actionID int, objectType string, objectID uint) (bool, error) {
	return s.object[objectGrantKey[A]{actor, actionID, objectType, objectID}], nil
}
