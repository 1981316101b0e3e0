package subst_test

import (
	"github.com/toejough/subst"
)

// Calculator is the contract substituted throughout the facade tests.
type Calculator interface {
	Add(a, b int) int
	Divide(a, b int) (int, error)
	Log(message string)
	Sum(values ...int) int
	Describe(label string, value any) string
}

// unexported variables.
var (
	calculatorMethods = subst.MethodsOf[Calculator]()
)

// calculatorSub implements Calculator by forwarding every call to the engine.
type calculatorSub struct {
	call subst.OnCall
}

func (c *calculatorSub) Add(a, b int) int {
	results := c.call(calculatorMethods["Add"], a, b)

	return subst.Result[int](results, 0)
}

func (c *calculatorSub) Describe(label string, value any) string {
	results := c.call(calculatorMethods["Describe"], label, value)

	return subst.Result[string](results, 0)
}

func (c *calculatorSub) Divide(a, b int) (int, error) {
	results := c.call(calculatorMethods["Divide"], a, b)

	return subst.Result[int](results, 0), subst.Result[error](results, 1)
}

func (c *calculatorSub) Log(message string) {
	c.call(calculatorMethods["Log"], message)
}

func (c *calculatorSub) Sum(values ...int) int {
	results := c.call(calculatorMethods["Sum"], values)

	return subst.Result[int](results, 0)
}

func newCalculatorSub(onCall subst.OnCall) Calculator {
	return &calculatorSub{call: onCall}
}
