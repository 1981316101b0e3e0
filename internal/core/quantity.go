package core

import "fmt"

// Quantity is the number of matching calls a verification requires.
type Quantity struct {
	min int
	max int // unbounded when negative
}

// AtLeast requires n or more matching calls.
func AtLeast(n int) Quantity {
	panicIfNegative(n)

	return Quantity{min: n, max: -1}
}

// Exactly requires exactly n matching calls.
func Exactly(n int) Quantity {
	panicIfNegative(n)

	return Quantity{min: n, max: n}
}

// None requires zero matching calls.
func None() Quantity {
	return Exactly(0)
}

// Within requires between lo and hi matching calls, inclusive.
func Within(lo, hi int) Quantity {
	panicIfNegative(lo)

	if hi < lo {
		panic(fmt.Sprintf("quantity: upper bound %d below lower bound %d", hi, lo))
	}

	return Quantity{min: lo, max: hi}
}

// Matches reports whether count satisfies the quantity.
func (q Quantity) Matches(count int) bool {
	if count < q.min {
		return false
	}

	return q.max < 0 || count <= q.max
}

func (q Quantity) String() string {
	switch {
	case q.max == 0:
		return "no calls"
	case q.max < 0:
		return fmt.Sprintf("at least %d %s", q.min, pluralCalls(q.min))
	case q.min == q.max:
		return fmt.Sprintf("exactly %d %s", q.min, pluralCalls(q.min))
	default:
		return fmt.Sprintf("between %d and %d calls", q.min, q.max)
	}
}

func panicIfNegative(n int) {
	if n < 0 {
		panic(fmt.Sprintf("quantity: negative call count %d", n))
	}
}
