package core_test

import (
	"reflect"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/subst/internal/core"
)

// unexported variables.
var (
	intType    = reflect.TypeFor[int]()
	stringType = reflect.TypeFor[string]()
)

func TestPlaceholders_OnePerArgumentBindPositionally(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	router := core.NewCallRouter()
	router.PushPlaceholder(core.Any(), intType)
	router.PushPlaceholder(core.Satisfies(func(b int) bool { return b > 10 }), intType)
	router.EnterConfiguringReturn(core.ReturnValues(9))
	route(router, addMethod, 0, 0)

	g.Expect(route(router, addMethod, 3, 11)).To(Equal([]any{9}))
	g.Expect(route(router, addMethod, 3, 10)).To(Equal([]any{0}))
}

func TestPlaceholders_BindToZeroValuedArguments(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	router := core.NewCallRouter()
	router.PushPlaceholder(core.Any(), intType)
	router.EnterConfiguringReturn(core.ReturnValues(9))
	route(router, addMethod, 0, 5)

	g.Expect(route(router, addMethod, 7, 5)).To(Equal([]any{9}))
	g.Expect(route(router, addMethod, 7, 6)).To(Equal([]any{0}))
}

func TestPlaceholders_AmbiguousBindingFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	router := core.NewCallRouter()
	router.PushPlaceholder(core.Any(), intType)
	router.EnterConfiguringReturn(core.ReturnValues(9))

	_, err := router.Route(addMethod, []any{0, 0})
	g.Expect(err).To(MatchError(core.ErrAmbiguousArguments))

	// nothing was configured, and the queue was drained
	g.Expect(route(router, addMethod, 0, 0)).To(Equal([]any{0}))
}

func TestPlaceholders_WrongTypeCannotBind(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	router := core.NewCallRouter()
	router.PushPlaceholder(core.Any(), stringType)
	router.EnterVerifying(core.MatchExactArgs, core.None())

	_, err := router.Route(addMethod, []any{0, 5})
	g.Expect(err).To(MatchError(core.ErrAmbiguousArguments))
}

func TestPlaceholders_InVerification(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	router := core.NewCallRouter()
	route(router, addMethod, 4, 5)
	route(router, addMethod, 6, 5)

	router.PushPlaceholder(core.Any(), intType)
	router.EnterVerifying(core.MatchExactArgs, core.Exactly(2))

	_, err := router.Route(addMethod, []any{0, 5})
	g.Expect(err).NotTo(HaveOccurred())
}

func TestPlaceholders_NilableParameterBindsNil(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type sink interface {
		Write(key string, value any) error
	}

	write := core.MethodsOf[sink]()["Write"]

	router := core.NewCallRouter()
	route(router, write, "k", map[string]int{"a": 1})

	router.PushPlaceholder(core.Any(), reflect.TypeFor[any]())
	router.EnterVerifying(core.MatchExactArgs, core.Exactly(1))

	_, err := router.Route(write, []any{"k", nil})
	g.Expect(err).NotTo(HaveOccurred())
}

func TestPlaceholders_OutsideConfigurationFail(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	router := core.NewCallRouter()
	router.PushPlaceholder(core.Any(), intType)

	_, err := router.Route(addMethod, []any{0, 1})
	g.Expect(err).To(MatchError(core.ErrAmbiguousArguments))
	g.Expect(router.History()).To(HaveLen(1), "the call is recorded before the misuse is reported")

	_, err = router.Route(addMethod, []any{0, 1})
	g.Expect(err).NotTo(HaveOccurred())
}
