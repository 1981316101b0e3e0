package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Engine failures wrap one of these so callers can use errors.Is.
var (
	ErrAlreadyRegistered       = errors.New("substitute already registered")
	ErrAmbiguousArguments      = errors.New("ambiguous argument placeholders")
	ErrArityMismatch           = errors.New("argument count does not match method arity")
	ErrNotASubstitute          = errors.New("not a substitute")
	ErrNullSubstituteReference = errors.New("null substitute reference")
	ErrReceivedCallsMismatch   = errors.New("received calls mismatch")
	ErrReturnTypeMismatch      = errors.New("return value does not match method results")
	ErrSequenceOrder           = errors.New("call sequence must be strictly increasing")
	ErrUnknownMethod           = errors.New("unknown method")
)

// ReceivedCallsMismatchError reports a verification whose observed count of
// matching calls disagrees with the requested quantity.
type ReceivedCallsMismatchError struct {
	Specification CallSpecification
	Quantity      Quantity
	Count         int
	// Matching holds every call the specification matched.
	Matching []RecordedCall
	// Related holds calls to a member with the same name that did not match.
	Related []RecordedCall
}

func (e *ReceivedCallsMismatchError) Error() string {
	var out strings.Builder

	fmt.Fprintf(&out, "%v: expected to receive %s matching:\n\t%s\n",
		ErrReceivedCallsMismatch, e.Quantity, e.Specification)

	switch len(e.Matching) {
	case 0:
		out.WriteString("actually received no matching calls.")
	default:
		fmt.Fprintf(&out, "actually received %d matching %s:", e.Count, pluralCalls(e.Count))

		for _, call := range e.Matching {
			fmt.Fprintf(&out, "\n\t%s", call)
		}
	}

	if len(e.Related) > 0 {
		fmt.Fprintf(&out,
			"\nreceived %d non-matching %s (non-matching arguments indicated with '*' characters):",
			len(e.Related), pluralCalls(len(e.Related)))

		for _, call := range e.Related {
			fmt.Fprintf(&out, "\n\t%s", e.Specification.describeMismatch(call))
		}
	}

	return out.String()
}

// Unwrap makes errors.Is(err, ErrReceivedCallsMismatch) hold.
func (e *ReceivedCallsMismatchError) Unwrap() error {
	return ErrReceivedCallsMismatch
}

func pluralCalls(n int) string {
	if n == 1 {
		return "call"
	}

	return "calls"
}
