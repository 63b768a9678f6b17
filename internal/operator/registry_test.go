package operator

import (
	"errors"
	"testing"
)

func TestDefaultRegistryHasBuiltins(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{
		OpChange, OpDelete, OpYank, OpPut, OpDistribute,
		OpIndent, OpOutdent, OpFormat, OpUpper, OpLower, OpSwapCase,
	} {
		if !r.Has(name) {
			t.Errorf("expected built-in %q registered", name)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Op{Name: "", Fn: changeFn})
	if !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("expected ErrInvalidOperator for empty name, got %v", err)
	}

	err = r.Register(Op{Name: "broken"})
	if !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("expected ErrInvalidOperator for nil fn, got %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterFn("mine", changeFn); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := r.RegisterFn("mine", changeFn)
	if !errors.Is(err, ErrOperatorExists) {
		t.Errorf("expected ErrOperatorExists, got %v", err)
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterFn("mine", changeFn); err != nil {
		t.Fatalf("register: %v", err)
	}

	op, ok := r.Get("mine")
	if !ok || op.Name != "mine" {
		t.Errorf("expected mine, got %+v ok=%v", op, ok)
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("expected missing operator absent")
	}
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.RegisterFn(name, changeFn); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}

	names := r.Names()
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}
