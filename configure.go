package subst

import (
	"github.com/toejough/subst/internal/core"
)

// Panics makes the next call on sub configure the called member to panic
// with value. The panicking call is still recorded.
//
//	subst.Panics(store, io.ErrUnexpectedEOF).Load("key")
func Panics[T any](sub T, value any) T {
	routerFor(sub).EnterConfiguringReturn(core.PanicWith(value))

	return sub
}

// Returns makes the next call on sub configure the called member to return
// values, one per declared result. The most recent matching configuration wins.
//
//	subst.Returns(calc, 3).Add(1, 2)
//	subst.Returns(store, 0, errNotFound).Load("missing")
func Returns[T any](sub T, values ...any) T {
	routerFor(sub).EnterConfiguringReturn(core.ReturnValues(values...))

	return sub
}

// ReturnsFunc makes the next call on sub configure the called member to
// return whatever compute produces for each matching call.
func ReturnsFunc[T any](sub T, compute func(call Call) []any) T {
	routerFor(sub).EnterConfiguringReturn(core.ReturnFunc(compute))

	return sub
}

// When makes the next call on sub register action as a side effect of the
// called member. Every matching action runs, in registration order, before the
// member's result is produced.
//
//	subst.When(logger, func(c subst.Call) { lines = append(lines, c.Arg(0).(string)) }).Log(subst.AnyArg[string](logger))
func When[T any](sub T, action func(call Call)) T {
	routerFor(sub).EnterConfiguringWhen(action)

	return sub
}
