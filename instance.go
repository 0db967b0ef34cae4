package accessly

import (
	"context"
	"fmt"
)

// cacheKey identifies one resolved check. The scoped flag keeps a
// general and an object registration apart even when both carry the
// same numeric id.
type cacheKey struct {
	actionID int
	scoped   bool
	objectID uint
}

// Instance is a policy bound to one actor for one logical request or
// session. It memoizes every resolved check for its lifetime: once a
// (action, object) pair is decided, later changes to the underlying
// grants are not visible until a new instance is bound. The cache has no
// locking; do not share an instance across goroutines. Instances bound
// from the same policy are fully independent.
type Instance[A comparable] struct {
	policy *Policy[A]
	actor  A
	source GrantSource[A]
	cache  map[cacheKey]bool
}

// Actor returns the actor this instance was bound with.
func (in *Instance[A]) Actor() A { return in.actor }

// Evaluate resolves the named action for this instance's actor. A nil
// obj selects the general call shape, a non-nil obj the object call
// shape; the action must be registered for the shape used, otherwise
// Evaluate fails with ErrInvalidArgument. A definite override decides
// the check without touching the grant source; a deferring or absent
// override falls back to it. Results are cached per (action, object),
// errors never are.
func (in *Instance[A]) Evaluate(ctx context.Context, action string, obj Object) (bool, error) {
	if in.policy.objectType == "" {
		return false, fmt.Errorf("%w: no object type configured", ErrConfiguration)
	}
	if obj == nil {
		return in.evaluateGeneral(ctx, action)
	}
	return in.evaluateObject(ctx, action, obj)
}

// Can is a convenience wrapper for the general call shape, returning
// bool instead of (bool, error). Evaluation failures read as false.
func (in *Instance[A]) Can(ctx context.Context, action string) bool {
	ok, err := in.Evaluate(ctx, action, nil)
	return err == nil && ok
}

// CanOn is the object call shape counterpart of Can.
func (in *Instance[A]) CanOn(ctx context.Context, action string, obj Object) bool {
	ok, err := in.Evaluate(ctx, action, obj)
	return err == nil && ok
}

// Permitted filters objects down to those the actor may perform the
// named action on. The action must be object-scoped; each object is
// resolved through the same override and cache path as CanOn. The first
// evaluation error aborts the filter.
func (in *Instance[A]) Permitted(ctx context.Context, action string, objects []Object) ([]Object, error) {
	permitted := make([]Object, 0, len(objects))
	for _, obj := range objects {
		ok, err := in.Evaluate(ctx, action, obj)
		if err != nil {
			return nil, err
		}
		if ok {
			permitted = append(permitted, obj)
		}
	}
	return permitted, nil
}

func (in *Instance[A]) evaluateGeneral(ctx context.Context, action string) (bool, error) {
	id, ok := in.policy.general[action]
	if !ok {
		if _, objectOnly := in.policy.object[action]; objectOnly {
			return false, fmt.Errorf("%w: action %q requires a target object", ErrInvalidArgument, action)
		}
		return false, fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, action)
	}

	key := cacheKey{actionID: id}
	if cached, hit := in.cache[key]; hit {
		return cached, nil
	}

	if override := in.policy.generalOverrides[action]; override != nil {
		switch override(ctx, in.actor) {
		case Allow:
			in.cache[key] = true
			return true, nil
		case Deny:
			in.cache[key] = false
			return false, nil
		}
		// Defer: fall through to the grant source.
	}

	granted, err := in.source.HasGeneralGrant(ctx, in.actor, id, in.policy.objectType)
	if err != nil {
		return false, err
	}
	in.cache[key] = granted
	return granted, nil
}

func (in *Instance[A]) evaluateObject(ctx context.Context, action string, obj Object) (bool, error) {
	id, ok := in.policy.object[action]
	if !ok {
		if _, generalOnly := in.policy.general[action]; generalOnly {
			return false, fmt.Errorf("%w: action %q does not take a target object", ErrInvalidArgument, action)
		}
		return false, fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, action)
	}

	key := cacheKey{actionID: id, scoped: true, objectID: obj.ObjectID()}
	if cached, hit := in.cache[key]; hit {
		return cached, nil
	}

	if override := in.policy.objectOverrides[action]; override != nil {
		switch override(ctx, in.actor, obj) {
		case Allow:
			in.cache[key] = true
			return true, nil
		case Deny:
			in.cache[key] = false
			return false, nil
		}
	}

	granted, err := in.source.HasObjectGrant(ctx, in.actor, id, in.policy.objectType, obj.ObjectID())
	if err != nil {
		return false, err
	}
	in.cache[key] = granted
	return granted, nil
}
