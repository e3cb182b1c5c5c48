package object

import (
	"fmt"

	"jocks/value"
)

type Instance struct {
	Fields map[string]value.Value
	Class  *Class
}

// Implement the value.Value interface
// --------------------------------------------------------
func (*Instance) JocksValueMarkerFunc() {}
func (*Instance) TypeName() string      { return "Instance" }

// Fallback form, see Stringify for the __str__ aware one.
func (i *Instance) String() string {
	return fmt.Sprintf("Instance(%v)", i.Class.Name)
}

// --------------------------------------------------------

func NewInstance(class *Class) *Instance {
	return class.Instantiate()
}

func (i *Instance) Get(name string) (value.Value, bool) {
	// Fields take precedence over methods
	if value, ok := i.Fields[name]; ok {
		return value, true
	} else if method, ok := i.Class.FindMethod(name); ok {
		return Bind(i, method), true
	} else {
		return nil, false
	}
}

func (i *Instance) Set(name string, value value.Value) {
	i.Fields[name] = value
}

// Text of v as print and to_string show it. An instance whose class
// resolves __str__ is asked for its own text.
func Stringify(inv Invoker, v value.Value) (string, error) {
	instance, ok := v.(*Instance)
	if !ok {
		return v.String(), nil
	}

	method, ok := instance.Class.FindMethod(StrMethod)
	if !ok {
		return instance.String(), nil
	}

	result := inv.Invoke(Bind(instance, method), nil)
	if s, ok := result.(value.String); ok {
		return string(s), nil
	}

	return "", makeNativeError(
		"%v.%v must return a String, got %v.",
		instance.Class.Name, StrMethod, result.TypeName(),
	)
}
