// Package core provides the internal implementation of subst's call routing,
// stubbing, and verification engine.
package core

import (
	"fmt"

	"go.uber.org/zap"
)

// CallRouter is the per-substitute engine every intercepted call passes
// through. It owns the call history, the return and when configurations, and
// the one-shot mode that decides how the next intercepted call is handled.
//
// A CallRouter is not safe for concurrent use.
type CallRouter struct {
	name   string
	logger *zap.Logger

	mode         mode
	calls        CallCollection
	nextSequence uint64
	returns      []ReturnConfiguration
	whens        []WhenConfiguration
	placeholders []placeholder
}

// NewCallRouter creates a router in Normal mode with an empty history.
func NewCallRouter(opts ...RouterOption) *CallRouter {
	router := &CallRouter{
		name:   "substitute",
		logger: zap.NewNop(),
		mode:   modeNormal{},
	}

	for _, opt := range opts {
		opt(router)
	}

	return router
}

// RouterOption configures a CallRouter.
type RouterOption func(*CallRouter)

// WithLogger traces routing decisions at debug level.
func WithLogger(logger *zap.Logger) RouterOption {
	return func(r *CallRouter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithName sets the name used in diagnostics.
func WithName(name string) RouterOption {
	return func(r *CallRouter) {
		if name != "" {
			r.name = name
		}
	}
}

// ClearHistory discards every recorded call. Configurations are kept.
func (r *CallRouter) ClearHistory() {
	r.logger.Debug("clearing call history",
		zap.String("substitute", r.name), zap.Int("discarded", r.calls.Len()))
	r.calls.Clear()
}

// ConfigureReturn registers strategy for calls matching spec. Later
// registrations take precedence over earlier ones.
func (r *CallRouter) ConfigureReturn(spec CallSpecification, strategy ReturnStrategy) error {
	if strategy == nil {
		strategy = ReturnFunc(nil)
	}

	if err := strategy.check(spec.method); err != nil {
		return err
	}

	r.returns = append(r.returns, ReturnConfiguration{Specification: spec, Strategy: strategy})

	return nil
}

// ConfigureWhen registers action for calls matching spec. All matching
// actions run, in registration order.
func (r *CallRouter) ConfigureWhen(spec CallSpecification, action Action) {
	r.whens = append(r.whens, WhenConfiguration{Specification: spec, Action: action})
}

// EnterClearingHistory makes the next intercepted call clear the history
// instead of being routed.
func (r *CallRouter) EnterClearingHistory() {
	r.mode = modeClearingHistory{}
}

// EnterConfiguringReturn makes the next intercepted call capture a
// specification bound to strategy.
func (r *CallRouter) EnterConfiguringReturn(strategy ReturnStrategy) {
	r.mode = modeConfiguringReturn{strategy: strategy}
}

// EnterConfiguringWhen makes the next intercepted call capture a
// specification bound to action.
func (r *CallRouter) EnterConfiguringWhen(action Action) {
	r.mode = modeConfiguringWhen{action: action}
}

// EnterVerifying makes the next intercepted call a verification query.
func (r *CallRouter) EnterVerifying(matchMode MatchMode, quantity Quantity) {
	r.mode = modeVerifying{matchMode: matchMode, quantity: quantity}
}

// History returns a snapshot of every recorded call, oldest first.
func (r *CallRouter) History() []RecordedCall {
	return r.calls.All()
}

// Mode names the pending one-shot mode.
func (r *CallRouter) Mode() string {
	return r.mode.String()
}

// Name identifies the substitute in diagnostics.
func (r *CallRouter) Name() string { return r.name }

// Route handles one intercepted call according to the pending mode, then
// resets the mode to Normal. It always returns one value per declared result;
// on error those are the zero values.
//
// Panics raised by configured strategies or actions propagate unchanged,
// after the call has been recorded.
func (r *CallRouter) Route(method MethodIdentity, args []any) ([]any, error) {
	current := r.mode
	r.mode = modeNormal{}
	placeholders := r.takePlaceholders()

	r.logger.Debug("routing call",
		zap.String("substitute", r.name),
		zap.Stringer("method", method),
		zap.Stringer("mode", current),
		zap.Int("placeholders", len(placeholders)))

	if len(args) != method.Arity() {
		return method.ZeroResults(), fmt.Errorf("%w: %s takes %d, got %d arguments",
			ErrArityMismatch, method, method.Arity(), len(args))
	}

	switch pending := current.(type) {
	case modeVerifying:
		return method.ZeroResults(), r.verifyCall(method, args, placeholders, pending)
	case modeClearingHistory:
		r.ClearHistory()

		return method.ZeroResults(), nil
	case modeConfiguringReturn:
		spec, err := r.capture(method, args, placeholders)
		if err != nil {
			return method.ZeroResults(), err
		}

		return method.ZeroResults(), r.ConfigureReturn(spec, pending.strategy)
	case modeConfiguringWhen:
		spec, err := r.capture(method, args, placeholders)
		if err != nil {
			return method.ZeroResults(), err
		}

		r.ConfigureWhen(spec, pending.action)

		return method.ZeroResults(), nil
	default:
		call := r.record(method, args, RoleInvocation)

		if len(placeholders) > 0 {
			return method.ZeroResults(), fmt.Errorf(
				"%w: %d argument placeholders used outside of configuration or verification of %s",
				ErrAmbiguousArguments, len(placeholders), method)
		}

		return r.dispatch(call)
	}
}

// Verify counts the recorded invocations matching spec over the whole
// history and fails with a ReceivedCallsMismatchError when the count does not
// satisfy quantity. Calls captured while configuring are not counted.
func (r *CallRouter) Verify(spec CallSpecification, quantity Quantity) error {
	var matching, related []RecordedCall

	for _, call := range r.calls.calls {
		if call.role != RoleInvocation {
			continue
		}

		ok, err := spec.Matches(call)
		if err != nil {
			return err
		}

		switch {
		case ok:
			matching = append(matching, call)
		case call.method.Name == spec.method.Name:
			related = append(related, call)
		}
	}

	r.logger.Debug("verified calls",
		zap.String("substitute", r.name),
		zap.Stringer("specification", spec),
		zap.Stringer("quantity", quantity),
		zap.Int("count", len(matching)))

	if quantity.Matches(len(matching)) {
		return nil
	}

	return &ReceivedCallsMismatchError{
		Specification: spec,
		Quantity:      quantity,
		Count:         len(matching),
		Matching:      matching,
		Related:       related,
	}
}

// capture records a configuring call and builds its exact-args specification.
func (r *CallRouter) capture(method MethodIdentity, args []any, placeholders []placeholder) (CallSpecification, error) {
	r.record(method, args, RoleCapture)

	return specificationFor(method, args, placeholders)
}

// dispatch runs matching when-actions in registration order, then applies
// the most recently registered matching return strategy.
func (r *CallRouter) dispatch(call RecordedCall) ([]any, error) {
	for _, when := range r.whens {
		ok, err := when.Specification.Matches(call)
		if err != nil {
			return call.method.ZeroResults(), err
		}

		if ok && when.Action != nil {
			when.Action(call)
		}
	}

	for i := len(r.returns) - 1; i >= 0; i-- {
		ok, err := r.returns[i].Specification.Matches(call)
		if err != nil {
			return call.method.ZeroResults(), err
		}

		if ok {
			return r.returns[i].Strategy.produce(call)
		}
	}

	return call.method.ZeroResults(), nil
}

func (r *CallRouter) record(method MethodIdentity, args []any, role Role) RecordedCall {
	r.nextSequence++
	call := NewRecordedCall(method, args, r.nextSequence, role)

	// the router owns the sequence counter, so append cannot fail
	_ = r.calls.Append(call)

	return call
}

func (r *CallRouter) verifyCall(
	method MethodIdentity,
	args []any,
	placeholders []placeholder,
	pending modeVerifying,
) error {
	if pending.matchMode == MatchAnyArgs {
		return r.Verify(AnyArgsSpecification(method), pending.quantity)
	}

	spec, err := specificationFor(method, args, placeholders)
	if err != nil {
		return err
	}

	return r.Verify(spec, pending.quantity)
}

// mode is the pending one-shot action for the next intercepted call.
type mode interface {
	fmt.Stringer
	isMode()
}

type modeClearingHistory struct{}

func (modeClearingHistory) String() string { return "clearing-history" }

func (modeClearingHistory) isMode() {}

type modeConfiguringReturn struct {
	strategy ReturnStrategy
}

func (modeConfiguringReturn) String() string { return "configuring-return" }

func (modeConfiguringReturn) isMode() {}

type modeConfiguringWhen struct {
	action Action
}

func (modeConfiguringWhen) String() string { return "configuring-when" }

func (modeConfiguringWhen) isMode() {}

type modeNormal struct{}

func (modeNormal) String() string { return "normal" }

func (modeNormal) isMode() {}

type modeVerifying struct {
	matchMode MatchMode
	quantity  Quantity
}

func (m modeVerifying) String() string {
	return fmt.Sprintf("verifying(%s, %s)", m.matchMode, m.quantity)
}

func (modeVerifying) isMode() {}
