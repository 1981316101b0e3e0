package subst

import (
	"github.com/toejough/subst/internal/core"
)

// ClearReceivedCalls discards the call history of sub. Configured results and
// side effects are kept.
func ClearReceivedCalls(sub any) {
	routerFor(sub).ClearHistory()
}

// DidNotReceive verifies that the next call on sub was never received with
// equal arguments.
func DidNotReceive[T any](sub T) T {
	return ReceivedQuantity(sub, core.None())
}

// DidNotReceiveWithAnyArgs verifies that the member called next on sub was
// never received, whatever the arguments.
func DidNotReceiveWithAnyArgs[T any](sub T) T {
	return ReceivedWithAnyArgsQuantity(sub, core.None())
}

// Received verifies that the next call on sub was received exactly once with
// equal arguments. Zero calls and more than one call both fail.
//
//	subst.Received(calc).Add(1, 2)
func Received[T any](sub T) T {
	return ReceivedQuantity(sub, core.Exactly(1))
}

// ReceivedCalls returns every call sub has recorded, oldest first.
func ReceivedCalls(sub any) []Call {
	return routerFor(sub).History()
}

// ReceivedQuantity verifies that the next call on sub was received with equal
// arguments a number of times satisfying quantity.
func ReceivedQuantity[T any](sub T, quantity Quantity) T {
	routerFor(sub).EnterVerifying(core.MatchExactArgs, quantity)

	return sub
}

// ReceivedTimes verifies that the next call on sub was received exactly n
// times with equal arguments.
func ReceivedTimes[T any](sub T, n int) T {
	return ReceivedQuantity(sub, core.Exactly(n))
}

// ReceivedWithAnyArgs verifies that the member called next on sub was
// received exactly once, whatever the arguments.
func ReceivedWithAnyArgs[T any](sub T) T {
	return ReceivedWithAnyArgsQuantity(sub, core.Exactly(1))
}

// ReceivedWithAnyArgsQuantity verifies that the member called next on sub
// was received, whatever the arguments, a number of times satisfying quantity.
func ReceivedWithAnyArgsQuantity[T any](sub T, quantity Quantity) T {
	routerFor(sub).EnterVerifying(core.MatchAnyArgs, quantity)

	return sub
}

// ReceivedWithAnyArgsTimes verifies that the member called next on sub was
// received exactly n times, whatever the arguments.
func ReceivedWithAnyArgsTimes[T any](sub T, n int) T {
	return ReceivedWithAnyArgsQuantity(sub, core.Exactly(n))
}
