package object

import (
	"fmt"

	"jocks/value"
)

const (
	InitMethod = "__init__"
	StrMethod  = "__str__"
)

type Class struct {
	Name       string
	Methods    map[string]Function
	Superclass *Class // Can be nil
}

// Implement the value.Value interface
// --------------------------------------------------------
func (*Class) JocksValueMarkerFunc() {}
func (*Class) TypeName() string      { return "Class" }

func (c *Class) String() string {
	return fmt.Sprintf("Class(%v)", c.Name)
}

// --------------------------------------------------------

// The method table always ends up with an __init__ entry, a no-op taking
// only the receiver is added when none was declared.
func NewClass(name string, methods map[string]Function, superclass *Class) *Class {
	if methods == nil {
		methods = make(map[string]Function)
	}

	if _, ok := methods[InitMethod]; !ok {
		methods[InitMethod] = noopInitializer(name)
	}

	return &Class{
		Name:       name,
		Methods:    methods,
		Superclass: superclass,
	}
}

// Method resolution: own table first, then the superclass chain.
func (c *Class) FindMethod(name string) (Function, bool) {
	for class := c; class != nil; class = class.Superclass {
		if fun, ok := class.Methods[name]; ok {
			return fun, true
		}

		if class.Superclass == class {
			break
		}
	}

	return nil, false
}

func (c *Class) Initializer() Function {
	return c.Methods[InitMethod]
}

// Instances are only ever created through this.
func (c *Class) Instantiate() *Instance {
	return &Instance{Class: c, Fields: make(map[string]value.Value)}
}

func noopInitializer(className string) *NativeFunction {
	return NewNative(className+"."+InitMethod, 1,
		func(Invoker, []value.Value) (value.Value, error) {
			return value.NilValue, nil
		})
}
