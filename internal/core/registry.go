package core

import (
	"fmt"
	"reflect"
	"sync"
)

// Register associates instance with router. It is called once, when the
// substitute is created, before any call reaches it.
//
// Registering a *CallRouter is a no-op. Registering the same instance twice
// fails with ErrAlreadyRegistered.
func Register(instance any, router *CallRouter) error {
	if _, ok := instance.(*CallRouter); ok {
		return nil
	}

	if isNilReference(instance) {
		return ErrNullSubstituteReference
	}

	if router == nil {
		return fmt.Errorf("%w: nil router for %T", ErrNullSubstituteReference, instance)
	}

	if !reflect.TypeOf(instance).Comparable() {
		return fmt.Errorf("%w: %T cannot be used as a substitute key", ErrNotASubstitute, instance)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[instance]; ok {
		return fmt.Errorf("%w: %T", ErrAlreadyRegistered, instance)
	}

	registry[instance] = router

	return nil
}

// ResolveFor returns the router of a substitute.
// A *CallRouter resolves to itself.
func ResolveFor(instance any) (*CallRouter, error) {
	if router, ok := instance.(*CallRouter); ok {
		if router == nil {
			return nil, ErrNullSubstituteReference
		}

		return router, nil
	}

	if isNilReference(instance) {
		return nil, ErrNullSubstituteReference
	}

	if !reflect.TypeOf(instance).Comparable() {
		return nil, fmt.Errorf("%w: %T", ErrNotASubstitute, instance)
	}

	registryMu.Lock()
	router, ok := registry[instance]
	registryMu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotASubstitute, instance)
	}

	return router, nil
}

// Unregister removes instance from the registry. Unknown instances are ignored.
func Unregister(instance any) {
	if isNilReference(instance) || !reflect.TypeOf(instance).Comparable() {
		return
	}

	registryMu.Lock()
	delete(registry, instance)
	registryMu.Unlock()
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional: substitutes are resolved by identity
	registry = make(map[any]*CallRouter)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

func isNilReference(instance any) bool {
	if instance == nil {
		return true
	}

	value := reflect.ValueOf(instance)
	if isNilable(value.Type()) {
		return value.IsNil()
	}

	return false
}
