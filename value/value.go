package value

import (
	"math"
	"strconv"
)

// The value interface every value stored in any variable
// must be of this type(implement this interface).
type Value interface {
	String() string
	// Variant name used in diagnostics.
	TypeName() string
	JocksValueMarkerFunc()
}

// Primitve value types, that are: Nil, Boolean, Number and String are
// defined as in terms of go primitive types and are stored by value, so
// comparing two of them with == compares their variant and contents.
// For objects see jocks/object, they are stored as pointers.

type Nil struct{}
type Boolean bool
type Number float64
type String string

var (
	NilValue Value = Nil{}
	True     Value = Boolean(true)
	False    Value = Boolean(false)
)

// Implement the value.Value interface for primitive types.
// --------------------------------------------------------
func (Nil) JocksValueMarkerFunc()     {}
func (Boolean) JocksValueMarkerFunc() {}
func (Number) JocksValueMarkerFunc()  {}
func (String) JocksValueMarkerFunc()  {}

func (Nil) TypeName() string     { return "Nil" }
func (Boolean) TypeName() string { return "Bool" }
func (Number) TypeName() string  { return "Number" }
func (String) TypeName() string  { return "String" }

func (n Nil) String() string {
	return "nil"
}

func (b Boolean) String() string {
	if b {
		return "true"
	} else {
		return "false"
	}
}

func (n Number) String() string {
	switch {
	case math.IsInf(float64(n), 1):
		return "inf"
	case math.IsInf(float64(n), -1):
		return "-inf"
	}
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (s String) String() string {
	return string(s)
}

// --------------------------------------------------------

// Converts a host bool to one of the two Boolean values.
func Bool(b bool) Boolean {
	return Boolean(b)
}
