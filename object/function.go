package object

import (
	"fmt"

	"jocks/ast"
	"jocks/value"
)

// Every callable value: user functions, natives and bound methods.
type Function interface {
	value.Value
	Arity() int
	Name() string
}

// Lets host code (natives, stringification) call back into the evaluator.
// Faults raised by the callee propagate exactly as they would from a call
// expression.
type Invoker interface {
	Invoke(fn Function, args []value.Value) value.Value
}

type UserFunction struct {
	Declaration *ast.Function
	// Scope active when the declaration was executed.
	Closure *Environment
	// Name shown in traces, e.g. "Point.__init__" for methods.
	DisplayName string
}

// Implement the value.Value interface
// --------------------------------------------------------
func (*UserFunction) JocksValueMarkerFunc() {}
func (*UserFunction) TypeName() string      { return "Function" }

func (f *UserFunction) String() string {
	return fmt.Sprintf("<fn %v>", f.Name())
}

// --------------------------------------------------------

func NewUserFunction(decl *ast.Function, closure *Environment, displayName string) *UserFunction {
	if displayName == "" {
		displayName = decl.Name.Lexeme
	}

	return &UserFunction{
		Declaration: decl,
		Closure:     closure,
		DisplayName: displayName,
	}
}

func (f *UserFunction) Arity() int {
	return len(f.Declaration.Params)
}

func (f *UserFunction) Name() string {
	return f.DisplayName
}

// A method with its receiver attached.
type BoundMethod struct {
	Receiver *Instance
	Method   Function
}

// Implement the value.Value interface
// --------------------------------------------------------
func (*BoundMethod) JocksValueMarkerFunc() {}
func (*BoundMethod) TypeName() string      { return "BoundMethod" }

func (b *BoundMethod) String() string {
	return fmt.Sprintf("<bound method %v of %v>", b.Method.Name(), b.Receiver)
}

// --------------------------------------------------------

func Bind(receiver *Instance, method Function) *BoundMethod {
	return &BoundMethod{Receiver: receiver, Method: method}
}

// The receiver is passed implicitly.
func (b *BoundMethod) Arity() int {
	return b.Method.Arity() - 1
}

func (b *BoundMethod) Name() string {
	return b.Method.Name()
}

// Argument list for the underlying method: the receiver followed by args.
func (b *BoundMethod) Arguments(args []value.Value) []value.Value {
	full := make([]value.Value, 0, len(args)+1)
	full = append(full, b.Receiver)
	return append(full, args...)
}
