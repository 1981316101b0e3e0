package core_test

import (
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/subst/internal/core"
	"pgregory.net/rapid"
)

// fakeSubstitute stands in for a generated adapter; only its pointer identity matters.
type fakeSubstitute struct {
	id int
}

func TestResolveFor_RegisteredInstance_ReturnsItsRouter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	instance := &fakeSubstitute{}
	router := core.NewCallRouter()

	g.Expect(core.Register(instance, router)).To(Succeed())
	t.Cleanup(func() { core.Unregister(instance) })

	resolved, err := core.ResolveFor(instance)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(resolved).To(BeIdenticalTo(router))
}

func TestResolveFor_IdentityNotEquality(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registered := &fakeSubstitute{id: 1}
	lookalike := &fakeSubstitute{id: 1}

	g.Expect(core.Register(registered, core.NewCallRouter())).To(Succeed())
	t.Cleanup(func() { core.Unregister(registered) })

	_, err := core.ResolveFor(lookalike)
	g.Expect(err).To(MatchError(core.ErrNotASubstitute))
}

func TestResolveFor_Router_ReturnsItself(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	router := core.NewCallRouter()

	resolved, err := core.ResolveFor(router)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(resolved).To(BeIdenticalTo(router))
	g.Expect(core.Register(router, router)).To(Succeed(), "registering a router is a no-op")
}

func TestResolveFor_NullReferences(t *testing.T) {
	t.Parallel()

	var (
		nilSubstitute *fakeSubstitute
		nilRouter     *core.CallRouter
		nilInterface  calculator
	)

	for name, instance := range map[string]any{
		"untyped nil":     nil,
		"typed nil":       nilSubstitute,
		"nil router":      nilRouter,
		"nil interface":   nilInterface,
		"nil map":         map[string]int(nil),
		"nil func":        (func())(nil),
		"nil slice value": []int(nil),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			_, err := core.ResolveFor(instance)
			g.Expect(err).To(MatchError(core.ErrNullSubstituteReference))
		})
	}
}

func TestResolveFor_NotASubstitute(t *testing.T) {
	t.Parallel()

	for name, instance := range map[string]any{
		"struct value":     notCalculator,
		"unregistered ptr": &fakeSubstitute{},
		"string":           "calculator",
		"non-comparable":   []int{1},
		"func":             func() {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			_, err := core.ResolveFor(instance)
			g.Expect(err).To(MatchError(core.ErrNotASubstitute))
		})
	}
}

func TestRegister_Rejections(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	instance := &fakeSubstitute{}
	g.Expect(core.Register(instance, core.NewCallRouter())).To(Succeed())
	t.Cleanup(func() { core.Unregister(instance) })

	g.Expect(core.Register(instance, core.NewCallRouter())).To(MatchError(core.ErrAlreadyRegistered))
	g.Expect(core.Register(nil, core.NewCallRouter())).To(MatchError(core.ErrNullSubstituteReference))
	g.Expect(core.Register(&fakeSubstitute{}, nil)).To(MatchError(core.ErrNullSubstituteReference))
	g.Expect(core.Register(map[string]int{}, core.NewCallRouter())).To(MatchError(core.ErrNotASubstitute))
}

func TestUnregister_RemovesEntry(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	instance := &fakeSubstitute{}
	g.Expect(core.Register(instance, core.NewCallRouter())).To(Succeed())

	core.Unregister(instance)
	core.Unregister(nil)
	core.Unregister([]int{})

	_, err := core.ResolveFor(instance)
	g.Expect(err).To(MatchError(core.ErrNotASubstitute))
	g.Expect(core.Register(instance, core.NewCallRouter())).To(Succeed(), "an unregistered instance can be registered again")
	core.Unregister(instance)
}

// TestRegister_ConcurrentAccess verifies the registry is safe for concurrent
// registration and lookup of different substitutes.
func TestRegister_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	const numGoroutines = 100

	instances := make([]*fakeSubstitute, numGoroutines)
	routers := make([]*core.CallRouter, numGoroutines)
	resolved := make([]*core.CallRouter, numGoroutines)
	errs := make([]error, numGoroutines)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := range numGoroutines {
		instances[i] = &fakeSubstitute{id: i}
		routers[i] = core.NewCallRouter()

		go func(idx int) {
			defer wg.Done()

			if err := core.Register(instances[idx], routers[idx]); err != nil {
				errs[idx] = err

				return
			}

			resolved[idx], errs[idx] = core.ResolveFor(instances[idx])
		}(i)
	}

	wg.Wait()

	for i := range numGoroutines {
		g.Expect(errs[i]).NotTo(HaveOccurred())
		g.Expect(resolved[i]).To(BeIdenticalTo(routers[i]),
			"each substitute must resolve to its own router")
		core.Unregister(instances[i])
	}
}

// TestRegister_ConcurrentAccess_Rapid uses property-based testing to verify
// concurrent registration safety with randomized access patterns.
func TestRegister_ConcurrentAccess_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 50).Draw(rt, "numGoroutines")
		instances := make([]*fakeSubstitute, numGoroutines)
		routers := make([]*core.CallRouter, numGoroutines)
		results := make([]*core.CallRouter, numGoroutines)

		for i := range numGoroutines {
			instances[i] = &fakeSubstitute{id: i}
			routers[i] = core.NewCallRouter()
		}

		var wg sync.WaitGroup
		wg.Add(numGoroutines)

		for i := range numGoroutines {
			go func(idx int) {
				defer wg.Done()

				_ = core.Register(instances[idx], routers[idx])
				results[idx], _ = core.ResolveFor(instances[idx])
			}(i)
		}

		wg.Wait()

		for i := range numGoroutines {
			core.Unregister(instances[i])

			if results[i] != routers[i] {
				rt.Fatalf("goroutine %d resolved a different router", i)
			}
		}
	})
}
