package value

// Operator families. A variant supports an operator family only if it
// implements the matching interface; the evaluator reports an unsupported
// operator for everything else. The boolean result of the binary methods is
// false when the right operand has a variant the left one cannot combine
// with.

// == and !=
type Equatable interface {
	Equal(other Value) Boolean
}

// < <= > >=
type Ordered interface {
	LessThan(other Value) (Boolean, bool)
	LessEqual(other Value) (Boolean, bool)
	GreaterThan(other Value) (Boolean, bool)
	GreaterEqual(other Value) (Boolean, bool)
}

// Binary +
type Adder interface {
	Add(other Value) (Value, bool)
}

// Binary - * /
type Arithmetic interface {
	Sub(other Value) (Value, bool)
	Mul(other Value) (Value, bool)
	Div(other Value) (Value, bool)
}

// Unary + and -
type Signed interface {
	Plus() Value
	Negate() Value
}

// Unary !
type Invertible interface {
	Not() Boolean
}

// Equality
// --------------------------------------------------------
func (Nil) Equal(other Value) Boolean {
	_, ok := other.(Nil)
	return Boolean(ok)
}

func (b Boolean) Equal(other Value) Boolean {
	o, ok := other.(Boolean)
	return Boolean(ok && b == o)
}

func (n Number) Equal(other Value) Boolean {
	o, ok := other.(Number)
	return Boolean(ok && n == o)
}

func (s String) Equal(other Value) Boolean {
	o, ok := other.(String)
	return Boolean(ok && s == o)
}

// Logical operations
// --------------------------------------------------------
func (b Boolean) Not() Boolean {
	return !b
}

// Ordering, numbers only.
// --------------------------------------------------------
func (n Number) LessThan(other Value) (Boolean, bool) {
	o, ok := other.(Number)
	return Boolean(ok && n < o), ok
}

func (n Number) LessEqual(other Value) (Boolean, bool) {
	o, ok := other.(Number)
	return Boolean(ok && n <= o), ok
}

func (n Number) GreaterThan(other Value) (Boolean, bool) {
	o, ok := other.(Number)
	return Boolean(ok && n > o), ok
}

func (n Number) GreaterEqual(other Value) (Boolean, bool) {
	o, ok := other.(Number)
	return Boolean(ok && n >= o), ok
}

// Mathematical operations
// --------------------------------------------------------
func (n Number) Plus() Value {
	return n
}

func (n Number) Negate() Value {
	return -n
}

func (n Number) Add(other Value) (Value, bool) {
	if o, ok := other.(Number); ok {
		return n + o, true
	}
	return nil, false
}

func (n Number) Sub(other Value) (Value, bool) {
	if o, ok := other.(Number); ok {
		return n - o, true
	}
	return nil, false
}

func (n Number) Mul(other Value) (Value, bool) {
	if o, ok := other.(Number); ok {
		return n * o, true
	}
	return nil, false
}

// Division by zero follows IEEE 754.
func (n Number) Div(other Value) (Value, bool) {
	if o, ok := other.(Number); ok {
		return n / o, true
	}
	return nil, false
}

// String concatenation
func (s String) Add(other Value) (Value, bool) {
	if o, ok := other.(String); ok {
		return s + o, true
	}
	return nil, false
}
