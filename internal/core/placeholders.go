package core

import (
	"fmt"
	"reflect"
)

// PushPlaceholder queues matcher for the next capture or verification call.
// paramType is the static type of the parameter the placeholder stands in
// for; the caller passes that type's zero value as the argument.
func (r *CallRouter) PushPlaceholder(matcher Matcher, paramType reflect.Type) {
	r.placeholders = append(r.placeholders, placeholder{matcher: matcher, paramType: paramType})
}

type placeholder struct {
	matcher   Matcher
	paramType reflect.Type
}

// specificationFor builds an exact-args specification for an intercepted
// call, replacing placeholder positions with their queued matchers.
//
// When there is one placeholder per argument they bind positionally.
// Otherwise each placeholder binds, in order, to the next argument holding the
// zero value of its type, and the number of such candidate arguments must
// equal the number of placeholders.
func specificationFor(method MethodIdentity, args []any, placeholders []placeholder) (CallSpecification, error) {
	matchers := make([]Matcher, len(args))

	switch {
	case len(placeholders) == 0:
		for i, arg := range args {
			matchers[i] = AsMatcher(arg)
		}
	case len(placeholders) == len(args):
		for i, pending := range placeholders {
			matchers[i] = pending.matcher
		}
	default:
		if err := bindPlaceholders(method, args, placeholders, matchers); err != nil {
			return CallSpecification{}, err
		}
	}

	return NewCallSpecification(method, matchers...)
}

func bindPlaceholders(method MethodIdentity, args []any, placeholders []placeholder, matchers []Matcher) error {
	candidates := 0

	for _, arg := range args {
		for _, pending := range placeholders {
			if isZeroOf(arg, pending.paramType) {
				candidates++

				break
			}
		}
	}

	if candidates != len(placeholders) {
		return fmt.Errorf("%w: %s: %d placeholders for %d candidate arguments; "+
			"use a placeholder for every argument", ErrAmbiguousArguments, method, len(placeholders), candidates)
	}

	next := 0

	for i, arg := range args {
		if next < len(placeholders) && isZeroOf(arg, placeholders[next].paramType) {
			matchers[i] = placeholders[next].matcher
			next++

			continue
		}

		matchers[i] = AsMatcher(arg)
	}

	if next != len(placeholders) {
		return fmt.Errorf("%w: %s: could not bind %d of %d placeholders in order",
			ErrAmbiguousArguments, method, len(placeholders)-next, len(placeholders))
	}

	return nil
}

func isZeroOf(arg any, paramType reflect.Type) bool {
	if arg == nil {
		return paramType == nil || isNilable(paramType)
	}

	value := reflect.ValueOf(arg)

	return value.Type() == paramType && value.IsZero()
}

func (r *CallRouter) takePlaceholders() []placeholder {
	taken := r.placeholders
	r.placeholders = nil

	return taken
}
