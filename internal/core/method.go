package core

import (
	"fmt"
	"reflect"
	"strings"
)

// MethodIdentity identifies one member of a substituted contract.
// Identities are comparable with ==; equality is name plus signature.
type MethodIdentity struct {
	Name      string
	Signature reflect.Type
}

// NewMethodIdentity builds an identity from a name and a func type describing
// the member's parameters and results (without a receiver).
func NewMethodIdentity(name string, signature reflect.Type) MethodIdentity {
	if signature == nil || signature.Kind() != reflect.Func {
		panic(fmt.Sprintf("method %s: signature must be a func type, got %v", name, signature))
	}

	return MethodIdentity{Name: name, Signature: signature}
}

// MethodOf returns the identity of the named method on contract.
// contract may be an interface type, a pointer to an interface type, or any
// concrete type with methods. For concrete types the receiver is dropped from
// the signature.
func MethodOf(contract reflect.Type, name string) (MethodIdentity, error) {
	if contract == nil {
		return MethodIdentity{}, fmt.Errorf("%w: nil contract", ErrUnknownMethod)
	}

	if contract.Kind() == reflect.Pointer && contract.Elem().Kind() == reflect.Interface {
		contract = contract.Elem()
	}

	method, ok := contract.MethodByName(name)
	if !ok {
		return MethodIdentity{}, fmt.Errorf("%w: %s has no method %q", ErrUnknownMethod, contract, name)
	}

	return identityFromMethod(contract, method), nil
}

// MethodsOf returns the identities of every method on T, keyed by name.
func MethodsOf[T any]() map[string]MethodIdentity {
	contract := reflect.TypeFor[T]()
	methods := make(map[string]MethodIdentity, contract.NumMethod())

	for i := range contract.NumMethod() {
		method := contract.Method(i)
		methods[method.Name] = identityFromMethod(contract, method)
	}

	return methods
}

// Arity is the number of parameters. A variadic tail counts as one slice parameter.
func (m MethodIdentity) Arity() int {
	if m.Signature == nil {
		return 0
	}

	return m.Signature.NumIn()
}

func (m MethodIdentity) String() string {
	if m.Signature == nil {
		return m.Name + "()"
	}

	return m.Name + strings.TrimPrefix(m.Signature.String(), "func")
}

// ZeroResults returns the zero value of every declared result type.
// Interface, pointer, and other nilable results are returned as untyped nil.
func (m MethodIdentity) ZeroResults() []any {
	if m.Signature == nil {
		return nil
	}

	results := make([]any, m.Signature.NumOut())
	for i := range results {
		results[i] = zeroOf(m.Signature.Out(i))
	}

	return results
}

func identityFromMethod(contract reflect.Type, method reflect.Method) MethodIdentity {
	signature := method.Type
	if contract.Kind() != reflect.Interface {
		// concrete method types carry the receiver as the first parameter
		ins := make([]reflect.Type, 0, signature.NumIn()-1)
		for i := 1; i < signature.NumIn(); i++ {
			ins = append(ins, signature.In(i))
		}

		outs := make([]reflect.Type, 0, signature.NumOut())
		for i := range signature.NumOut() {
			outs = append(outs, signature.Out(i))
		}

		signature = reflect.FuncOf(ins, outs, signature.IsVariadic())
	}

	return MethodIdentity{Name: method.Name, Signature: signature}
}

func isNilable(typ reflect.Type) bool {
	switch typ.Kind() { //nolint:exhaustive // only nilable kinds matter
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan,
		reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func zeroOf(typ reflect.Type) any {
	if isNilable(typ) {
		return nil
	}

	return reflect.Zero(typ).Interface()
}
