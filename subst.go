// Package subst provides substitutes (test doubles) for Go interfaces.
//
// A substitute intercepts every call made against it, records it, and lets the
// test configure results and side effects and later verify which calls
// occurred. Configuration and verification are one-shot modes set on the
// substitute immediately before calling the member they apply to:
//
//	calc := subst.For(t, newCalculatorSub)
//	subst.Returns(calc, 3).Add(1, 2)
//	_ = calc.Add(1, 2) // 3
//	subst.Received(calc).Add(1, 2)
//
// This is the public API entry point. Implementation lives in internal/core.
package subst

import (
	"reflect"

	"github.com/toejough/subst/internal/core"
	"go.uber.org/zap"
)

// Call is one recorded call: method identity, arguments, and sequence index.
type Call = core.RecordedCall

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing.
type Matcher = core.Matcher

// MethodIdentity identifies one member of a substituted contract.
type MethodIdentity = core.MethodIdentity

// OnCall is the callback a substitute's adapter forwards every call into.
// It returns one value per declared result of method.
type OnCall func(method MethodIdentity, args ...any) []any

// Option configures a substitute created with For.
type Option func(*options)

// Quantity is the number of matching calls a verification requires.
type Quantity = core.Quantity

// TestReporter is the minimal interface subst needs from test frameworks.
type TestReporter = core.TestReporter

// Errors reported by the engine. Match them with errors.Is.
var (
	ErrAmbiguousArguments      = core.ErrAmbiguousArguments
	ErrNotASubstitute          = core.ErrNotASubstitute
	ErrNullSubstituteReference = core.ErrNullSubstituteReference
	ErrReceivedCallsMismatch   = core.ErrReceivedCallsMismatch
	ErrReturnTypeMismatch      = core.ErrReturnTypeMismatch
)

// ReceivedCallsMismatchError carries the detail of a failed verification.
type ReceivedCallsMismatchError = core.ReceivedCallsMismatchError

// AtLeast requires n or more matching calls.
func AtLeast(n int) Quantity {
	return core.AtLeast(n)
}

// Exactly requires exactly n matching calls.
func Exactly(n int) Quantity {
	return core.Exactly(n)
}

// For creates a substitute for a contract. factory builds the adapter that
// implements the contract by forwarding every call to the OnCall it is given;
// the returned instance is registered before For returns.
//
// Engine failures (verification mismatches, bad configuration) are reported
// through t.Fatalf. The registration is removed on t.Cleanup when t supports it.
func For[T any](t TestReporter, factory func(OnCall) T, opts ...Option) T {
	t.Helper()

	settings := options{name: reflect.TypeFor[T]().String()}
	for _, opt := range opts {
		opt(&settings)
	}

	router := core.NewCallRouter(core.WithName(settings.name), core.WithLogger(settings.logger))

	onCall := func(method MethodIdentity, args ...any) []any {
		results, err := router.Route(method, args)
		if err != nil {
			t.Helper()
			t.Fatalf("%s: %v", router.Name(), err)
		}

		return results
	}

	instance := factory(onCall)

	err := core.Register(instance, router)
	if err != nil {
		t.Fatalf("registering substitute %s: %v", router.Name(), err)

		return instance
	}

	if registrar, ok := t.(core.CleanupRegistrar); ok {
		registrar.Cleanup(func() { core.Unregister(instance) })
	}

	return instance
}

// MethodOf returns the identity of the named method on contract.
func MethodOf(contract reflect.Type, name string) (MethodIdentity, error) {
	return core.MethodOf(contract, name)
}

// MethodsOf returns the identities of every method on T, keyed by name.
func MethodsOf[T any]() map[string]MethodIdentity {
	return core.MethodsOf[T]()
}

// Named sets the substitute's name used in failure messages.
func Named(name string) Option {
	return func(o *options) { o.name = name }
}

// None requires zero matching calls.
func None() Quantity {
	return core.None()
}

// Result converts the result at index to its static type. Missing or nil
// results yield R's zero value.
func Result[R any](results []any, index int) R {
	var zero R

	if index < 0 || index >= len(results) || results[index] == nil {
		return zero
	}

	value, ok := results[index].(R)
	if !ok {
		return zero
	}

	return value
}

// WithLogger traces the substitute's routing decisions at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Within requires between lo and hi matching calls, inclusive.
func Within(lo, hi int) Quantity {
	return core.Within(lo, hi)
}

type options struct {
	name   string
	logger *zap.Logger
}

// routerFor resolves sub or panics with the resolver's error, which names the
// substitute concept (null reference, or not a substitute).
func routerFor(sub any) *core.CallRouter {
	router, err := core.ResolveFor(sub)
	if err != nil {
		panic(err)
	}

	return router
}
