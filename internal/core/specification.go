package core

import (
	"fmt"
	"strings"
)

// MatchMode selects how a verification builds its specification from the
// intercepted call.
type MatchMode int

// Match modes.
const (
	// MatchExactArgs compares every argument by value (or by placeholder matcher).
	MatchExactArgs MatchMode = iota
	// MatchAnyArgs compares the method identity only.
	MatchAnyArgs
)

func (m MatchMode) String() string {
	if m == MatchAnyArgs {
		return "any-args"
	}

	return "exact-args"
}

// CallSpecification selects calls by method identity plus one matcher per
// argument position.
type CallSpecification struct {
	method   MethodIdentity
	matchers []Matcher
}

// AnyArgsSpecification matches every call to method regardless of arguments.
func AnyArgsSpecification(method MethodIdentity) CallSpecification {
	matchers := make([]Matcher, method.Arity())
	for i := range matchers {
		matchers[i] = Any()
	}

	return CallSpecification{method: method, matchers: matchers}
}

// NewCallSpecification builds a specification. There must be exactly one
// matcher per parameter of method.
func NewCallSpecification(method MethodIdentity, matchers ...Matcher) (CallSpecification, error) {
	if len(matchers) != method.Arity() {
		return CallSpecification{}, fmt.Errorf("%w: %s takes %d, got %d matchers",
			ErrArityMismatch, method, method.Arity(), len(matchers))
	}

	return CallSpecification{method: method, matchers: append([]Matcher(nil), matchers...)}, nil
}

// Matchers returns a copy of the positional matchers.
func (s CallSpecification) Matchers() []Matcher {
	return append([]Matcher(nil), s.matchers...)
}

// Matches reports whether call has the same method identity and every
// argument satisfies its positional matcher. An error from any matcher is
// returned unchanged.
func (s CallSpecification) Matches(call RecordedCall) (bool, error) {
	if call.method != s.method || len(call.args) != len(s.matchers) {
		return false, nil
	}

	for i, matcher := range s.matchers {
		ok, err := matcher.Match(call.args[i])
		if err != nil {
			return false, err
		}

		if !ok {
			return false, nil
		}
	}

	return true, nil
}

// Method is the identity the specification selects.
func (s CallSpecification) Method() MethodIdentity { return s.method }

// String renders the specification as Name(matcher, ...).
func (s CallSpecification) String() string {
	described := make([]string, len(s.matchers))
	for i, matcher := range s.matchers {
		described[i] = Describe(matcher)
	}

	return fmt.Sprintf("%s(%s)", s.method.Name, strings.Join(described, ", "))
}

// describeMismatch renders call with every non-matching argument wrapped in
// '*', followed by the failure message of each such argument.
func (s CallSpecification) describeMismatch(call RecordedCall) string {
	if call.method != s.method {
		return fmt.Sprintf("%s [different signature: %s]", call, call.method)
	}

	formatted := make([]string, len(call.args))
	reasons := make([]string, 0, len(call.args))

	for i, arg := range call.args {
		formatted[i] = formatValue(arg)

		if i >= len(s.matchers) {
			continue
		}

		ok, err := s.matchers[i].Match(arg)

		switch {
		case err != nil:
			formatted[i] = "*" + formatted[i] + "*"
			reasons = append(reasons, fmt.Sprintf("arg %d: %v", i, err))
		case !ok:
			formatted[i] = "*" + formatted[i] + "*"
			reasons = append(reasons, fmt.Sprintf("arg %d: %s", i, s.matchers[i].FailureMessage(arg)))
		}
	}

	out := fmt.Sprintf("%s(%s)", call.method.Name, strings.Join(formatted, ", "))
	for _, reason := range reasons {
		out += "\n\t\t" + strings.ReplaceAll(reason, "\n", "\n\t\t")
	}

	return out
}
