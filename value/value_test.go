package value

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"nil", NilValue, "nil"},
		{"true", True, "true"},
		{"false", False, "false"},
		{"integer", Number(3), "3"},
		{"fraction", Number(2.5), "2.5"},
		{"negative", Number(-0.25), "-0.25"},
		{"string", String("hi"), "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name        string
		left, right Value
		want        Boolean
	}{
		{"nil nil", NilValue, NilValue, true},
		{"bool same", True, True, true},
		{"bool differ", True, False, false},
		{"number same", Number(1), Number(1), true},
		{"number differ", Number(1), Number(2), false},
		{"string same", String("a"), String("a"), true},
		{"string differ", String("a"), String("b"), false},
		{"number string", Number(1), String("1"), false},
		{"nil false", NilValue, False, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.left.(Equatable).Equal(tt.right)
			if got != tt.want {
				t.Errorf("%v == %v: got %v, want %v", tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestOrderedRejectsOtherVariants(t *testing.T) {
	if _, ok := Number(1).LessThan(String("2")); ok {
		t.Error("comparing a number with a string should not be compatible")
	}

	got, ok := Number(1).LessEqual(Number(1))
	if !ok || !bool(got) {
		t.Errorf("1 <= 1: got %v, %v", got, ok)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   func(Arithmetic, Value) (Value, bool)
		a, b Number
		want Number
	}{
		{"sub", Arithmetic.Sub, 5, 3, 2},
		{"mul", Arithmetic.Mul, 4, 2.5, 10},
		{"div", Arithmetic.Div, 1, 4, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.op(tt.a, tt.b)
			if !ok || got != tt.want {
				t.Errorf("got %v, %v, want %v", got, ok, tt.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	if got, ok := String("ab").Add(String("cd")); !ok || got != String("abcd") {
		t.Errorf("concatenation: got %v, %v", got, ok)
	}

	if _, ok := String("ab").Add(Number(1)); ok {
		t.Error("string + number should not be compatible")
	}

	if got, ok := Number(1).Add(Number(2)); !ok || got != Number(3) {
		t.Errorf("1 + 2: got %v, %v", got, ok)
	}
}

func TestCapabilities(t *testing.T) {
	var v Value = True
	if _, ok := v.(Adder); ok {
		t.Error("Bool should not support +")
	}
	if _, ok := v.(Ordered); ok {
		t.Error("Bool should not support ordering")
	}
	if _, ok := Value(String("s")).(Arithmetic); ok {
		t.Error("String should not support - * /")
	}
	if _, ok := NilValue.(Invertible); ok {
		t.Error("Nil should not support !")
	}
}
