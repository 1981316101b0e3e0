package core_test

import (
	"errors"

	"github.com/toejough/subst/internal/core"
)

// calculator is the contract the router tests route calls for.
type calculator interface {
	Add(a, b int) int
	Divide(a, b int) (int, error)
	Log(message string)
	Sum(values ...int) int
}

// unexported variables.
var (
	errBoom       = errors.New("boom")
	errMatcher    = errors.New("matcher exploded")
	calcMethods   = core.MethodsOf[calculator]()
	addMethod     = calcMethods["Add"]
	divideMethod  = calcMethods["Divide"]
	logMethod     = calcMethods["Log"]
	sumMethod     = calcMethods["Sum"]
	notCalculator = struct{ name string }{name: "plain value"}
)

// erroringMatcher fails every match attempt with errMatcher.
type erroringMatcher struct{}

func (erroringMatcher) FailureMessage(any) string { return "never" }

func (erroringMatcher) Match(any) (bool, error) { return false, errMatcher }

// mustSpec builds a specification or panics; test inputs are always valid.
func mustSpec(method core.MethodIdentity, matchers ...core.Matcher) core.CallSpecification {
	spec, err := core.NewCallSpecification(method, matchers...)
	if err != nil {
		panic(err)
	}

	return spec
}

// recoverPanic runs fn and returns whatever it panicked with.
func recoverPanic(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()

	fn()

	return nil
}

// route forwards a call and fails loudly on engine errors the test did not expect.
func route(router *core.CallRouter, method core.MethodIdentity, args ...any) []any {
	results, err := router.Route(method, args)
	if err != nil {
		panic(err)
	}

	return results
}
