// Package match provides argument matchers for use with subst's ArgMatches
// placeholder and directly as arguments of `any`-typed parameters.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/subst/match"
//	)
//
//	subst.Received(store).Put(subst.ArgMatches[string](store, HavePrefix("user/")), BeAny)
package match

import (
	"fmt"
	"strings"

	"github.com/toejough/subst/internal/core"
)

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher = core.Matcher

// BeAny is a matcher that matches any value.
// Useful when you don't care about a particular argument.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny = core.Any()

// AllOf matches when every matcher matches. The first error stops evaluation.
func AllOf(matchers ...Matcher) Matcher {
	return &allOfMatcher{matchers: matchers}
}

// Equal matches values deeply equal to expected.
func Equal(expected any) Matcher {
	return core.Exact(expected)
}

// Not inverts matcher. Errors are passed through.
func Not(matcher Matcher) Matcher {
	return notMatcher{inner: matcher}
}

// Satisfy returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	subst.ArgMatches[int](calc, Satisfy(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	}))
func Satisfy[T any](predicate func(T) error) Matcher {
	return core.SatisfiesErr(predicate)
}

type allOfMatcher struct {
	matchers []Matcher
	failed   Matcher
}

func (m *allOfMatcher) FailureMessage(actual any) string {
	if m.failed == nil {
		return fmt.Sprintf("value %v does not match %s", actual, m)
	}

	return m.failed.FailureMessage(actual)
}

func (m *allOfMatcher) Match(actual any) (bool, error) {
	m.failed = nil

	for _, matcher := range m.matchers {
		ok, err := matcher.Match(actual)
		if err != nil {
			return false, err
		}

		if !ok {
			m.failed = matcher

			return false, nil
		}
	}

	return true, nil
}

func (m *allOfMatcher) String() string {
	described := make([]string, len(m.matchers))
	for i, matcher := range m.matchers {
		described[i] = core.Describe(matcher)
	}

	return "allOf(" + strings.Join(described, ", ") + ")"
}

type notMatcher struct {
	inner Matcher
}

func (m notMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("value %v unexpectedly matches %s", actual, core.Describe(m.inner))
}

func (m notMatcher) Match(actual any) (bool, error) {
	ok, err := m.inner.Match(actual)
	if err != nil {
		return false, err
	}

	return !ok, nil
}

func (m notMatcher) String() string {
	return "not(" + core.Describe(m.inner) + ")"
}
