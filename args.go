package subst

import (
	"reflect"

	"github.com/toejough/subst/internal/core"
)

// AnyArg is a placeholder argument that matches any value of type A when
// configuring or verifying a call on sub. It returns A's zero value.
//
//	subst.Returns(calc, 7).Add(subst.AnyArg[int](calc), 5)
func AnyArg[A any](sub any) A {
	return ArgMatches[A](sub, core.Any())
}

// ArgMatches is a placeholder argument matched by matcher, which may be any
// gomega matcher. It returns A's zero value.
func ArgMatches[A any](sub any, matcher Matcher) A {
	routerFor(sub).PushPlaceholder(matcher, reflect.TypeFor[A]())

	var zero A

	return zero
}

// ArgThat is a placeholder argument matched when predicate returns true.
// It returns A's zero value.
func ArgThat[A any](sub any, predicate func(A) bool) A {
	return ArgMatches[A](sub, core.Satisfies(predicate))
}
