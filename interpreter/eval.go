package interpreter

import (
	"fmt"

	"jocks/ast"
	"jocks/object"
	"jocks/token"
	"jocks/value"
)

// Expression evaluators
// --------------------------------------------------------
func (ev *evaluator) evaluate(expr ast.Expr) value.Value {
	switch e := expr.(type) {
	case *ast.Literal:
		return ev.literal(e)
	case *ast.Logical:
		return ev.logical(e)
	case *ast.Binary:
		return ev.binary(e)
	case *ast.Unary:
		return ev.unary(e)
	case *ast.Grouping:
		return ev.evaluate(e.Expr)
	case *ast.Dot:
		return ev.dot(e)
	case *ast.Call:
		return ev.callExpr(e)
	case *ast.New:
		return ev.newExpr(e)
	case *ast.Assign:
		return ev.assign(e)
	case *ast.Variable:
		return ev.lookUp(e)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (ev *evaluator) evaluateAll(exprs []ast.Expr) []value.Value {
	values := make([]value.Value, len(exprs))
	for i, expr := range exprs {
		values[i] = ev.evaluate(expr)
	}

	return values
}

func (ev *evaluator) literal(e *ast.Literal) value.Value {
	switch e.Token.Kind {
	case token.NUMBER:
		if n, ok := e.Token.Literal.(float64); ok {
			return value.Number(n)
		}
	case token.STRING:
		if s, ok := e.Token.Literal.(string); ok {
			return value.String(s)
		}
	case token.TRUE:
		return value.True
	case token.FALSE:
		return value.False
	case token.NIL:
		return value.NilValue
	}

	panic(ev.makeFault(InvalidLiteral, e.Pos,
		"Invalid literal '%v' of kind %v.", e.Token.Lexeme, e.Token.Kind))
}

// Both operands must be Bools. The result is the value which decided the
// outcome.
func (ev *evaluator) logical(e *ast.Logical) value.Value {
	var shortCircuit value.Boolean

	switch e.Operator.Kind {
	case token.AND:
		shortCircuit = value.Boolean(false)
	case token.OR:
		shortCircuit = value.Boolean(true)
	default:
		panic(ev.makeFault(InvalidOperator, e.Pos,
			"Invalid logical operator '%v'.", e.Operator.Lexeme))
	}

	left := ev.boolOperand(e.Left, e.Operator)
	if left == shortCircuit {
		return left
	}

	return ev.boolOperand(e.Right, e.Operator)
}

func (ev *evaluator) boolOperand(expr ast.Expr, operator token.Token) value.Boolean {
	v := ev.evaluate(expr)
	b, ok := v.(value.Boolean)
	if !ok {
		panic(ev.makeFault(TypeMismatch, expr.Position(),
			"Operands of '%v' must be Bools, got %v.", operator.Lexeme, v.TypeName()))
	}

	return b
}

func (ev *evaluator) binary(e *ast.Binary) value.Value {
	left := ev.evaluate(e.Left)
	right := ev.evaluate(e.Right)

	dunder, ok := object.BinaryDunder(e.Operator.Kind)
	if !ok {
		panic(ev.makeFault(InvalidOperator, e.Pos,
			"Invalid binary operator '%v'.", e.Operator.Lexeme))
	}

	if instance, ok := left.(*object.Instance); ok {
		return ev.callDunder(instance, dunder, e.Operator, e.Pos, right)
	}

	result, supported, compatible := primitiveBinary(e.Operator.Kind, left, right)
	switch {
	case !supported:
		panic(ev.makeFault(UnsupportedOperator, e.Pos,
			"%v does not support '%v'.", left.TypeName(), e.Operator.Lexeme))
	case !compatible:
		panic(ev.makeFault(TypeMismatch, e.Pos,
			"Right operand of '%v' must be a %v, got %v.",
			e.Operator.Lexeme, left.TypeName(), right.TypeName()))
	}

	return result
}

// Dispatches on the operator families the left operand implements.
func primitiveBinary(op token.TokenKind, left, right value.Value) (result value.Value, supported, compatible bool) {
	switch op {
	case token.EQUAL_EQUAL, token.BANG_EQUAL:
		l, ok := left.(value.Equatable)
		if !ok {
			return nil, false, false
		}

		equal := l.Equal(right)
		if op == token.BANG_EQUAL {
			equal = !equal
		}
		return equal, true, true

	case token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL:
		l, ok := left.(value.Ordered)
		if !ok {
			return nil, false, false
		}

		var b value.Boolean
		switch op {
		case token.LESS:
			b, compatible = l.LessThan(right)
		case token.LESS_EQUAL:
			b, compatible = l.LessEqual(right)
		case token.GREATER:
			b, compatible = l.GreaterThan(right)
		default:
			b, compatible = l.GreaterEqual(right)
		}
		return b, true, compatible

	case token.PLUS:
		l, ok := left.(value.Adder)
		if !ok {
			return nil, false, false
		}

		result, compatible = l.Add(right)
		return result, true, compatible

	case token.MINUS, token.STAR, token.SLASH:
		l, ok := left.(value.Arithmetic)
		if !ok {
			return nil, false, false
		}

		switch op {
		case token.MINUS:
			result, compatible = l.Sub(right)
		case token.STAR:
			result, compatible = l.Mul(right)
		default:
			result, compatible = l.Div(right)
		}
		return result, true, compatible
	}

	return nil, false, false
}

func (ev *evaluator) unary(e *ast.Unary) value.Value {
	right := ev.evaluate(e.Right)

	if e.Operator.Kind == token.BANG {
		if b, ok := right.(value.Invertible); ok {
			return b.Not()
		}

		panic(ev.makeFault(UnsupportedOperator, e.Pos,
			"%v does not support '!'.", right.TypeName()))
	}

	dunder, ok := object.UnaryDunder(e.Operator.Kind)
	if !ok {
		panic(ev.makeFault(InvalidOperator, e.Pos,
			"Invalid unary operator '%v'.", e.Operator.Lexeme))
	}

	if instance, ok := right.(*object.Instance); ok {
		return ev.callDunder(instance, dunder, e.Operator, e.Pos)
	}

	signed, ok := right.(value.Signed)
	if !ok {
		panic(ev.makeFault(UnsupportedOperator, e.Pos,
			"%v does not support unary '%v'.", right.TypeName(), e.Operator.Lexeme))
	}

	if e.Operator.Kind == token.MINUS {
		return signed.Negate()
	}
	return signed.Plus()
}

// Operators on instances are ordinary method calls.
func (ev *evaluator) callDunder(
	instance *object.Instance, dunder string, operator token.Token, pos ast.Pos,
	args ...value.Value,
) value.Value {
	method, ok := instance.Class.FindMethod(dunder)
	if !ok {
		panic(ev.makeFault(UnsupportedOperator, pos,
			"%v does not support '%v': no method %v.", instance, operator.Lexeme, dunder))
	}

	bound := object.Bind(instance, method)
	ev.checkArity(bound, len(args), pos)
	return ev.call(bound, args, pos)
}

// Instances expose fields, then methods bound to the instance. Classes
// expose unbound methods, which allows Super.method(this, ...) calls.
func (ev *evaluator) dot(e *ast.Dot) value.Value {
	target := ev.evaluate(e.Object)
	name := e.Name.Lexeme

	switch t := target.(type) {
	case *object.Instance:
		if v, ok := t.Get(name); ok {
			return v
		}
		panic(ev.makeFault(UndefinedProperty, e.Pos,
			"%v has no property or method '%v'.", t, name))

	case *object.Class:
		if method, ok := t.FindMethod(name); ok {
			return method
		}
		panic(ev.makeFault(UndefinedProperty, e.Pos,
			"%v has no method '%v'.", t, name))

	default:
		panic(ev.makeFault(NotAnObject, e.Pos,
			"Only instances and classes have properties, got %v.", target.TypeName()))
	}
}

func (ev *evaluator) callExpr(e *ast.Call) value.Value {
	callee := ev.evaluate(e.Callee)

	fn, ok := callee.(object.Function)
	if !ok {
		if _, isClass := callee.(*object.Class); isClass {
			panic(ev.makeFault(NotCallable, e.Pos,
				"%v is not callable, use 'new' to create an instance.", callee))
		}
		panic(ev.makeFault(NotCallable, e.Pos,
			"Can only call functions, got %v.", callee.TypeName()))
	}

	ev.checkArity(fn, len(e.Arguments), e.Pos)
	return ev.call(fn, ev.evaluateAll(e.Arguments), e.Pos)
}

// The initializer always runs and gets the new instance as its first
// argument. Its result is discarded.
func (ev *evaluator) newExpr(e *ast.New) value.Value {
	v := ev.lookUp(e.Class)
	class, ok := v.(*object.Class)
	if !ok {
		panic(ev.makeFault(NotAClass, e.Pos,
			"Can only instantiate classes, '%v' is a %v.", e.Class.Name.Lexeme, v.TypeName()))
	}

	init := class.Initializer()
	if init.Arity() != len(e.Arguments)+1 {
		panic(ev.makeFault(ArityMismatch, e.Pos,
			"%v expects %v arguments including the receiver but got %v.",
			init.Name(), init.Arity(), len(e.Arguments)+1))
	}

	instance := class.Instantiate()
	args := append([]value.Value{instance}, ev.evaluateAll(e.Arguments)...)
	ev.call(init, args, e.Pos)

	return instance
}

func (ev *evaluator) assign(e *ast.Assign) value.Value {
	v := ev.evaluate(e.Value)

	switch target := e.Target.(type) {
	case *ast.Variable:
		var err error
		if target.Depth == ast.Unresolved {
			err = ev.interp.globals.Set(target.Name.Lexeme, v)
		} else {
			err = ev.env.SetAt(target.Depth, target.Name.Lexeme, v)
		}

		if err != nil {
			panic(ev.makeFault(faultKindOf(err), target.Pos,
				"Undefined variable '%v'.", target.Name.Lexeme))
		}

	case *ast.Dot:
		obj := ev.evaluate(target.Object)
		instance, ok := obj.(*object.Instance)
		if !ok {
			panic(ev.makeFault(NotAnObject, target.Pos,
				"Only instances have fields, got %v.", obj.TypeName()))
		}
		instance.Set(target.Name.Lexeme, v)

	default:
		panic(fmt.Sprintf("unexpected assignment target %T", e.Target))
	}

	return v
}

// Resolved references read the scope the resolver found them in.
// Unresolved ones can only be globals.
func (ev *evaluator) lookUp(e *ast.Variable) value.Value {
	var (
		v   value.Value
		err error
	)

	if e.Depth == ast.Unresolved {
		v, err = ev.interp.globals.Get(e.Name.Lexeme)
	} else {
		v, err = ev.env.GetAt(e.Depth, e.Name.Lexeme)
	}

	if err != nil {
		panic(ev.makeFault(faultKindOf(err), e.Pos,
			"Undefined variable '%v'.", e.Name.Lexeme))
	}

	return v
}
