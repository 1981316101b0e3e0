package core

import (
	"fmt"
	"reflect"
)

// Action is a side effect run when a matching call is intercepted.
type Action func(call RecordedCall)

// ReturnConfiguration binds a specification to a return strategy.
type ReturnConfiguration struct {
	Specification CallSpecification
	Strategy      ReturnStrategy
}

// ReturnStrategy produces the results of a matching call.
// Implementations are ReturnValues, ReturnFunc, and PanicWith.
type ReturnStrategy interface {
	fmt.Stringer

	// check validates the strategy against method at configuration time.
	check(method MethodIdentity) error
	// produce returns results for call, or panics for PanicWith.
	produce(call RecordedCall) ([]any, error)
}

// WhenConfiguration binds a specification to a side effect.
type WhenConfiguration struct {
	Specification CallSpecification
	Action        Action
}

// PanicWith makes matching calls panic with value after they are recorded.
func PanicWith(value any) ReturnStrategy {
	return panicStrategy{value: value}
}

// ReturnFunc computes results from each matching call. The returned values
// are checked against the method's result types on every invocation.
func ReturnFunc(compute func(call RecordedCall) []any) ReturnStrategy {
	return funcStrategy{compute: compute}
}

// ReturnValues returns the same results for every matching call. There must
// be one value per declared result.
func ReturnValues(values ...any) ReturnStrategy {
	return &valuesStrategy{values: values}
}

type funcStrategy struct {
	compute func(call RecordedCall) []any
}

func (funcStrategy) check(MethodIdentity) error { return nil }

func (s funcStrategy) produce(call RecordedCall) ([]any, error) {
	if s.compute == nil {
		return call.method.ZeroResults(), nil
	}

	return coerceResults(call.method, s.compute(call))
}

func (funcStrategy) String() string { return "computed results" }

type panicStrategy struct {
	value any
}

func (panicStrategy) check(MethodIdentity) error { return nil }

func (s panicStrategy) produce(RecordedCall) ([]any, error) {
	panic(s.value)
}

func (s panicStrategy) String() string { return "panic(" + formatValue(s.value) + ")" }

type valuesStrategy struct {
	values []any
}

func (s *valuesStrategy) check(method MethodIdentity) error {
	_, err := coerceResults(method, s.values)

	return err
}

// produce coerces against the called method each time, so one strategy can
// serve members with different result types.
func (s *valuesStrategy) produce(call RecordedCall) ([]any, error) {
	return coerceResults(call.method, s.values)
}

func (s *valuesStrategy) String() string {
	formatted := make([]string, len(s.values))
	for i, value := range s.values {
		formatted[i] = formatValue(value)
	}

	return fmt.Sprintf("return %v", formatted)
}

// coerceResults checks values against the declared results of method.
// Untyped numeric constants are converted to the declared numeric kind.
func coerceResults(method MethodIdentity, values []any) ([]any, error) {
	if method.Signature == nil {
		return nil, fmt.Errorf("%w: %s has no signature", ErrReturnTypeMismatch, method.Name)
	}

	numOut := method.Signature.NumOut()
	if len(values) != numOut {
		return method.ZeroResults(), fmt.Errorf("%w: %s returns %d values, got %d",
			ErrReturnTypeMismatch, method, numOut, len(values))
	}

	coerced := make([]any, numOut)

	for i, value := range values {
		declared := method.Signature.Out(i)

		if value == nil {
			if !isNilable(declared) {
				return method.ZeroResults(), fmt.Errorf("%w: %s result %d: nil is not a %s",
					ErrReturnTypeMismatch, method, i, declared)
			}

			continue
		}

		actual := reflect.ValueOf(value)

		switch {
		case actual.Type().AssignableTo(declared):
			coerced[i] = value
		case isNumeric(actual.Kind()) && isNumeric(declared.Kind()) && actual.CanConvert(declared):
			coerced[i] = actual.Convert(declared).Interface()
		default:
			return method.ZeroResults(), fmt.Errorf("%w: %s result %d: %s is not assignable to %s",
				ErrReturnTypeMismatch, method, i, actual.Type(), declared)
		}
	}

	return coerced, nil
}

func isNumeric(kind reflect.Kind) bool {
	return kind >= reflect.Int && kind <= reflect.Complex128
}
