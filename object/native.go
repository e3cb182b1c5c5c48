package object

import (
	"fmt"
	"math"

	"jocks/value"
)

// Name of the root class every class without an explicit superclass
// inherits from.
const RootClassName = "Object"

// A global binding installed before any user code runs.
type Native struct {
	Name  string
	Value value.Value
}

// The global registration list. The resolver pre-declares exactly these
// names and the interpreter binds exactly these values, so both phases see
// the same global scope.
func Natives() []Native {
	natives := []*NativeFunction{
		// Type predicates
		NewNative("is_nil", 1, isType[value.Nil]),
		NewNative("is_bool", 1, isType[value.Boolean]),
		NewNative("is_number", 1, isType[value.Number]),
		NewNative("is_string", 1, isType[value.String]),
		NewNative("is_instance", 1, isType[*Instance]),
		NewNative("is_function", 1, isType[Function]),
		NewNative("is_class", 1, isType[*Class]),

		// Maths
		NewNative("abs", 1, abs),
		NewNative("floor", 1, floor),
		NewNative("pow", 2, pow),

		// Strings
		NewNative("to_string", 1, toString),
	}

	list := make([]Native, 0, len(natives)+1)
	for _, n := range natives {
		list = append(list, Native{Name: n.Name(), Value: n})
	}

	root := NewClass(RootClassName, nil, nil)
	return append(list, Native{Name: RootClassName, Value: root})
}

// Names of Natives(), in registration order.
func NativeNames() []string {
	natives := Natives()
	names := make([]string, len(natives))
	for i, n := range natives {
		names[i] = n.Name
	}

	return names
}

type NativeFunction struct {
	name       string
	ParamCount int
	Function   func(inv Invoker, args []value.Value) (value.Value, error)
}

func NewNative(
	name string, arity int,
	fn func(inv Invoker, args []value.Value) (value.Value, error),
) *NativeFunction {
	return &NativeFunction{name: name, ParamCount: arity, Function: fn}
}

// Implement the value.Value interface
// --------------------------------------------------------
func (*NativeFunction) JocksValueMarkerFunc() {}
func (*NativeFunction) TypeName() string      { return "NativeFunction" }

func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %v>", n.name)
}

// --------------------------------------------------------

func (n *NativeFunction) Arity() int {
	return n.ParamCount
}

func (n *NativeFunction) Name() string {
	return n.name
}

func (n *NativeFunction) Call(inv Invoker, args []value.Value) (value.Value, error) {
	// Arity is verified by the interpreter, so crash on a mismatch here.
	if len(args) != n.Arity() {
		panic("Got wrong number of arguments in native function.")
	}

	return n.Function(inv, args)
}

// Error returned by native functions on domain or type error.
// Note arity is verified by the interpreter.
// --------------------------------------------------------
type NativeError struct {
	message string
}

// For 'error' interface
func (n NativeError) Error() string { return n.message }

func makeNativeError(format string, args ...any) NativeError {
	return NativeError{message: fmt.Sprintf(format, args...)}
}

// Native functions
// --------------------------------------------------------

func isType[T any](_ Invoker, args []value.Value) (value.Value, error) {
	_, ok := args[0].(T)
	return value.Bool(ok), nil
}

func abs(_ Invoker, args []value.Value) (value.Value, error) {
	x, err := extractArg[value.Number](args[0],
		"Argument to 'abs' should be a number.")
	if err != nil {
		return nil, err
	}

	return value.Number(math.Abs(float64(x))), nil
}

func floor(_ Invoker, args []value.Value) (value.Value, error) {
	x, err := extractArg[value.Number](args[0],
		"Argument to 'floor' should be a number.")
	if err != nil {
		return nil, err
	}

	return value.Number(math.Floor(float64(x))), nil
}

func pow(_ Invoker, args []value.Value) (value.Value, error) {
	x, err := extractArg[value.Number](args[0],
		"First argument to 'pow' should be a number.")
	if err != nil {
		return nil, err
	}
	y, err := extractArg[value.Number](args[1],
		"Second argument to 'pow' should be a number.")
	if err != nil {
		return nil, err
	}

	return value.Number(math.Pow(float64(x), float64(y))), nil
}

func toString(inv Invoker, args []value.Value) (value.Value, error) {
	s, err := Stringify(inv, args[0])
	if err != nil {
		return nil, err
	}

	return value.String(s), nil
}

// Type checking helpers
// --------------------------------------------------------
func extractArg[T value.Value](arg value.Value, errMessage string) (T, error) {
	if v, ok := arg.(T); ok {
		return v, nil
	}

	var zero T
	return zero, makeNativeError("%v Got %v.", errMessage, arg.TypeName())
}
