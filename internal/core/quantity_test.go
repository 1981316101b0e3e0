package core_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/subst/internal/core"
	"pgregory.net/rapid"
)

func TestQuantity_String(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(core.None().String()).To(Equal("no calls"))
	g.Expect(core.Exactly(1).String()).To(Equal("exactly 1 call"))
	g.Expect(core.Exactly(3).String()).To(Equal("exactly 3 calls"))
	g.Expect(core.AtLeast(1).String()).To(Equal("at least 1 call"))
	g.Expect(core.Within(1, 3).String()).To(Equal("between 1 and 3 calls"))
}

func TestQuantity_InvalidBoundsPanic(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() { core.Exactly(-1) }).To(Panic())
	g.Expect(func() { core.AtLeast(-1) }).To(Panic())
	g.Expect(func() { core.Within(3, 1) }).To(Panic())
}

// TestExactly_MatchesOnlyItsCount_Property proves Exactly(n) accepts n and nothing else.
func TestExactly_MatchesOnlyItsCount_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 1000).Draw(rt, "n")
		count := rapid.IntRange(0, 1000).Draw(rt, "count")

		if core.Exactly(n).Matches(count) != (count == n) {
			rt.Fatalf("Exactly(%d).Matches(%d) = %v", n, count, !(count == n))
		}
	})
}

// TestWithin_MatchesItsRange_Property proves Within and AtLeast agree with their bounds.
func TestWithin_MatchesItsRange_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(0, 100).Draw(rt, "lo")
		hi := rapid.IntRange(lo, 200).Draw(rt, "hi")
		count := rapid.IntRange(0, 300).Draw(rt, "count")

		if got := core.Within(lo, hi).Matches(count); got != (count >= lo && count <= hi) {
			rt.Fatalf("Within(%d, %d).Matches(%d) = %v", lo, hi, count, got)
		}

		if got := core.AtLeast(lo).Matches(count); got != (count >= lo) {
			rt.Fatalf("AtLeast(%d).Matches(%d) = %v", lo, count, got)
		}
	})
}
