package core

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/google/go-cmp/cmp"
)

// Matcher is a predicate over a single argument value.
// It is compatible with gomega.GomegaMatcher via duck typing: any type
// implementing Match and FailureMessage works, so gomega matchers can be used
// directly as argument matchers.
//
// An error returned from Match fails the enclosing match operation; it is
// never treated as a non-match.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// Any returns a matcher that matches any value.
func Any() Matcher {
	return anyMatcher{}
}

// AsMatcher returns value itself when it already is a Matcher, and an Exact
// matcher for it otherwise.
func AsMatcher(value any) Matcher {
	if matcher, ok := value.(Matcher); ok {
		return matcher
	}

	return Exact(value)
}

// Describe renders a matcher for diagnostics.
func Describe(matcher Matcher) string {
	if stringer, ok := matcher.(fmt.Stringer); ok {
		return stringer.String()
	}

	return fmt.Sprintf("<%T>", matcher)
}

// Exact returns a matcher that compares by value using reflect.DeepEqual.
func Exact(expected any) Matcher {
	return exactMatcher{expected: expected}
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses reflect.DeepEqual for comparison.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	matcher := AsMatcher(expected)

	success, err := matcher.Match(actual)
	if err != nil {
		return false, err.Error()
	}

	if !success {
		return false, matcher.FailureMessage(actual)
	}

	return true, ""
}

// Satisfies returns a matcher that applies predicate to values of type T.
// Values of any other type do not match.
func Satisfies[T any](predicate func(T) bool) Matcher {
	return &satisfiesMatcher[T]{
		predicate: func(val T) error {
			if !predicate(val) {
				return errPredicateFalse
			}

			return nil
		},
	}
}

// SatisfiesErr returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
func SatisfiesErr[T any](predicate func(T) error) Matcher {
	return &satisfiesMatcher[T]{predicate: predicate}
}

// unexported variables.
var (
	errPredicateFalse = errors.New("predicate returned false")
)

type anyMatcher struct{}

func (anyMatcher) FailureMessage(any) string {
	return ""
}

func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

func (anyMatcher) String() string {
	return "any"
}

type exactMatcher struct {
	expected any
}

func (m exactMatcher) FailureMessage(actual any) string {
	msg := fmt.Sprintf("expected %s, got %s", formatValue(m.expected), formatValue(actual))

	if diff := argumentDiff(m.expected, actual); diff != "" {
		msg += "\n" + diff
	}

	return msg
}

func (m exactMatcher) Match(actual any) (bool, error) {
	return reflect.DeepEqual(actual, m.expected), nil
}

func (m exactMatcher) String() string {
	return formatValue(m.expected)
}

type satisfiesMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfiesMatcher[T]) FailureMessage(actual any) string {
	if _, ok := asType[T](actual); !ok {
		return fmt.Sprintf("value %s is not a %s", formatValue(actual), reflect.TypeFor[T]())
	}

	if m.lastErr != nil {
		return fmt.Sprintf("value %s does not satisfy predicate: %v", formatValue(actual), m.lastErr)
	}

	return fmt.Sprintf("value %s does not satisfy predicate", formatValue(actual))
}

func (m *satisfiesMatcher[T]) Match(actual any) (bool, error) {
	val, ok := asType[T](actual)
	if !ok {
		return false, nil
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

func (m *satisfiesMatcher[T]) String() string {
	return fmt.Sprintf("satisfies(%s)", reflect.TypeFor[T]())
}

// asType converts actual to T. An untyped nil converts to T's zero value when
// T is nilable, so predicates over interface parameters still see nil.
func asType[T any](actual any) (T, bool) {
	if actual == nil {
		var zero T

		return zero, isNilable(reflect.TypeFor[T]())
	}

	val, ok := actual.(T)

	return val, ok
}

// argumentDiff renders a -want +got diff for compound values, and "" for
// scalars or equal values.
func argumentDiff(expected, actual any) (diff string) {
	if expected == nil || actual == nil {
		return ""
	}

	switch reflect.TypeOf(expected).Kind() { //nolint:exhaustive // scalars render inline
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer:
	default:
		return ""
	}

	defer func() {
		if recover() != nil {
			diff = ""
		}
	}()

	return cmp.Diff(expected, actual, cmp.Exporter(func(reflect.Type) bool { return true }))
}

func formatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(typed)
	case error:
		return fmt.Sprintf("error(%q)", typed.Error())
	default:
		return fmt.Sprintf("%#v", value)
	}
}
