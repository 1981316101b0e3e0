package core

import (
	"fmt"
	"strings"
)

// Role distinguishes calls that exercised the substitute from calls that were
// intercepted only to capture a stub or side-effect specification.
type Role int

// Roles.
const (
	RoleInvocation Role = iota
	RoleCapture
)

func (r Role) String() string {
	if r == RoleCapture {
		return "capture"
	}

	return "invocation"
}

// RecordedCall is one intercepted invocation. It is immutable once recorded.
type RecordedCall struct {
	method   MethodIdentity
	args     []any
	sequence uint64
	role     Role
}

// NewRecordedCall builds a call record. args is copied.
func NewRecordedCall(method MethodIdentity, args []any, sequence uint64, role Role) RecordedCall {
	return RecordedCall{
		method:   method,
		args:     append([]any(nil), args...),
		sequence: sequence,
		role:     role,
	}
}

// Arg returns the argument at index, or nil when index is out of range.
func (c RecordedCall) Arg(index int) any {
	if index < 0 || index >= len(c.args) {
		return nil
	}

	return c.args[index]
}

// Args returns a copy of the argument values in call order.
func (c RecordedCall) Args() []any {
	return append([]any(nil), c.args...)
}

// Method is the identity of the called member.
func (c RecordedCall) Method() MethodIdentity { return c.method }

// Role tells invocations apart from configuring captures.
func (c RecordedCall) Role() Role { return c.role }

// Sequence is the call's position in its router's history.
func (c RecordedCall) Sequence() uint64 { return c.sequence }

// String renders the call as Name(arg, ...).
func (c RecordedCall) String() string {
	formatted := make([]string, len(c.args))
	for i, arg := range c.args {
		formatted[i] = formatValue(arg)
	}

	return fmt.Sprintf("%s(%s)", c.method.Name, strings.Join(formatted, ", "))
}

// CallCollection is the ordered, append-only history of one substitute.
type CallCollection struct {
	calls []RecordedCall
}

// All returns a snapshot of every recorded call, oldest first.
func (c *CallCollection) All() []RecordedCall {
	return append([]RecordedCall(nil), c.calls...)
}

// Append adds call to the end of the history. Sequence indices must be
// strictly increasing.
func (c *CallCollection) Append(call RecordedCall) error {
	if n := len(c.calls); n > 0 && call.sequence <= c.calls[n-1].sequence {
		return fmt.Errorf("%w: %d after %d", ErrSequenceOrder, call.sequence, c.calls[n-1].sequence)
	}

	c.calls = append(c.calls, call)

	return nil
}

// Clear discards every recorded call.
func (c *CallCollection) Clear() {
	c.calls = nil
}

// Len is the number of recorded calls.
func (c *CallCollection) Len() int {
	return len(c.calls)
}
