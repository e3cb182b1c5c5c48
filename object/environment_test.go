package object

import (
	"errors"
	"testing"

	"jocks/value"
)

func TestCreateThenGet(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Create("a", value.Number(1)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := env.Get("a")
	if err != nil || got != value.Number(1) {
		t.Errorf("Get(a) = %v, %v", got, err)
	}
}

func TestCreateDuplicate(t *testing.T) {
	env := NewEnvironment(nil)
	_ = env.Create("a", value.Number(1))

	err := env.Create("a", value.Number(2))
	if !errors.Is(err, ErrDuplicateDeclaration) {
		t.Fatalf("second Create: got %v, want ErrDuplicateDeclaration", err)
	}

	got, _ := env.Get("a")
	if got != value.Number(1) {
		t.Errorf("failed Create changed the binding to %v", got)
	}
}

func TestShadowing(t *testing.T) {
	outer := NewEnvironment(nil)
	_ = outer.Create("x", value.Number(1))

	inner := NewEnvironment(outer)
	if err := inner.Create("x", value.Number(2)); err != nil {
		t.Fatalf("shadowing Create: %v", err)
	}

	if got, _ := inner.Get("x"); got != value.Number(2) {
		t.Errorf("inner x = %v, want 2", got)
	}

	// Dropping the inner scope leaves the outer binding alone.
	if got, _ := outer.Get("x"); got != value.Number(1) {
		t.Errorf("outer x = %v, want 1", got)
	}
}

func TestSetWalksToOwner(t *testing.T) {
	outer := NewEnvironment(nil)
	_ = outer.Create("x", value.Number(1))
	inner := NewEnvironment(NewEnvironment(outer))

	if err := inner.Set("x", value.Number(5)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if got, _ := outer.Get("x"); got != value.Number(5) {
		t.Errorf("outer x = %v, want 5", got)
	}
	if names := inner.Names(); len(names) != 0 {
		t.Errorf("Set created bindings %v in the inner scope", names)
	}
}

func TestUnbound(t *testing.T) {
	env := NewEnvironment(NewEnvironment(nil))

	if _, err := env.Get("missing"); !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("Get: got %v, want ErrUnboundVariable", err)
	}
	if err := env.Set("missing", value.NilValue); !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("Set: got %v, want ErrUnboundVariable", err)
	}
}

func TestAncestorAndGetAt(t *testing.T) {
	global := NewEnvironment(nil)
	_ = global.Create("g", value.String("global"))
	middle := NewEnvironment(global)
	_ = middle.Create("g", value.String("middle"))
	inner := NewEnvironment(middle)

	tests := []struct {
		name    string
		depth   int
		want    value.Value
		wantErr bool
	}{
		{"own scope has no g", 0, nil, true},
		{"middle", 1, value.String("middle"), false},
		{"global", 2, value.String("global"), false},
		{"past the root", 3, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inner.GetAt(tt.depth, "g")
			if tt.wantErr {
				if !errors.Is(err, ErrUnboundVariable) {
					t.Errorf("GetAt(%v) error = %v, want ErrUnboundVariable", tt.depth, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("GetAt(%v) = %v, %v, want %v", tt.depth, got, err, tt.want)
			}
		})
	}

	if inner.Ancestor(2) != global {
		t.Error("Ancestor(2) should be the global scope")
	}
	if inner.Ancestor(5) != nil {
		t.Error("Ancestor past the root should be nil")
	}
}

func TestSetAt(t *testing.T) {
	global := NewEnvironment(nil)
	_ = global.Create("a", value.Number(1))
	inner := NewEnvironment(global)

	if err := inner.SetAt(1, "a", value.Number(2)); err != nil {
		t.Fatalf("SetAt: %v", err)
	}
	if got, _ := global.Get("a"); got != value.Number(2) {
		t.Errorf("a = %v, want 2", got)
	}
	if err := inner.SetAt(0, "a", value.Number(3)); !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("SetAt at the wrong depth: got %v", err)
	}
}
